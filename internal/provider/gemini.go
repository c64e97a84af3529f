package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/eloquasai/outreach-backend/internal/model"
)

const defaultCallTimeout = 15 * time.Second

// GeminiProvider backs both generation and research with Gemini.
type GeminiProvider struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

func NewGeminiProvider(apiKey string, timeout time.Duration) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := client.GenerativeModel("gemini-2.5-flash-lite")
	m.SetTemperature(0.7)
	m.SetTopP(0.95)
	m.SetMaxOutputTokens(1024)

	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &GeminiProvider{
		client:  client,
		model:   m,
		timeout: timeout,
	}, nil
}

func (g *GeminiProvider) Close() {
	g.client.Close()
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Research asks the model for one intent signal per line and wraps the
// result in a snapshot. The first line is kept as the summary.
func (g *GeminiProvider) Research(ctx context.Context, company, platform string) (*model.IntentSnapshot, error) {
	prompt := fmt.Sprintf(`You are a B2B account researcher. For the company "%s" evaluating or running "%s", list the strongest buying-intent signals you can infer.

The output MUST be plain text: a one-sentence summary on the first line, then one signal per line. No markdown, no numbering.`, company, platform)

	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var summary string
	var signals []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if summary == "" {
			summary = line
			continue
		}
		signals = append(signals, line)
	}
	if summary == "" {
		return nil, fmt.Errorf("empty research response")
	}

	return &model.IntentSnapshot{
		Company:    company,
		Platform:   platform,
		Signals:    signals,
		Summary:    summary,
		CapturedAt: time.Now().UTC(),
	}, nil
}
