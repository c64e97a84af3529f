package provider

import (
	"context"
	"errors"

	"github.com/eloquasai/outreach-backend/internal/model"
)

// ErrOffline is returned when no generation backend is configured.
var ErrOffline = errors.New("generation provider not configured")

// OfflineProvider stands in when no API key is available. It reports itself
// unavailable on every call, which routes synthesis onto the deterministic
// fallback content. The process stays fully functional without network
// access.
type OfflineProvider struct{}

func (OfflineProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrOffline
}

func (OfflineProvider) Research(ctx context.Context, company, platform string) (*model.IntentSnapshot, error) {
	return nil, ErrOffline
}
