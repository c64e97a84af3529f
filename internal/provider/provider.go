package provider

import (
	"context"

	"github.com/eloquasai/outreach-backend/internal/model"
)

// GenerationProvider is the external text-generation capability. Callers
// bound every invocation with a timeout; a slow provider is treated the
// same as a failed one.
type GenerationProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ResearchProvider is the external company-intelligence capability.
type ResearchProvider interface {
	Research(ctx context.Context, company, platform string) (*model.IntentSnapshot, error)
}
