package synth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/synth"
)

// MockProvider returns a canned response or error
type MockProvider struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	return m.Response, m.Err
}

var prospect = model.PersonalizationData{
	FirstName:  "Alice",
	LastName:   "Smith",
	Company:    "Acme Corp",
	Role:       "QA Director",
	Industry:   "fintech",
	PainPoints: []string{"flaky test suites"},
}

func TestSynthesizeParsesSubjectMarker(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{
		Response: "Subject: Quick question for Alice\n\nHi Alice,\n\nSaw your team is growing.\n\nBest",
	})

	tmpl, err := s.Synthesize(context.Background(), model.TemplateIntro, prospect)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Subject != "Quick question for Alice" {
		t.Errorf("unexpected subject: %q", tmpl.Subject)
	}
	if !strings.HasPrefix(tmpl.Body, "Hi Alice,") {
		t.Errorf("unexpected body: %q", tmpl.Body)
	}
	if strings.Contains(tmpl.Body, "Subject:") {
		t.Errorf("subject marker leaked into body: %q", tmpl.Body)
	}
}

func TestSynthesizeFirstLineAsSubject(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{
		Response: "A thought on Acme Corp's testing\nHi Alice,\nhope this finds you well.",
	})

	tmpl, err := s.Synthesize(context.Background(), model.TemplateFollowup, prospect)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Subject != "A thought on Acme Corp's testing" {
		t.Errorf("unexpected subject: %q", tmpl.Subject)
	}
	if !strings.HasPrefix(tmpl.Body, "Hi Alice,") {
		t.Errorf("unexpected body: %q", tmpl.Body)
	}
}

func TestSynthesizeSingleLineResponse(t *testing.T) {
	// One line leaves no body after subject extraction; the whole response
	// becomes the body under a default subject.
	s := synth.NewTemplateSynthesizer(&MockProvider{
		Response: "Hi Alice, just one line here.",
	})

	tmpl, err := s.Synthesize(context.Background(), model.TemplateNurture, prospect)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Body != "Hi Alice, just one line here." {
		t.Errorf("expected whole response as body, got %q", tmpl.Body)
	}
	if tmpl.Subject == "" {
		t.Error("expected a synthesized default subject")
	}
}

func TestSynthesizeFallbackOnProviderError(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{
		Err: errors.New("provider exploded"),
	})

	tmpl, err := s.Synthesize(context.Background(), model.TemplateIntro, prospect)
	if err != nil {
		t.Fatalf("provider failure must not surface: %v", err)
	}
	if !strings.Contains(tmpl.Body, "Alice") {
		t.Errorf("fallback body should address the prospect: %q", tmpl.Body)
	}
	if !strings.Contains(tmpl.Subject, "Acme Corp") {
		t.Errorf("fallback subject should name the company: %q", tmpl.Subject)
	}
	if tmpl.WordCount == 0 {
		t.Error("fallback must still be a usable draft")
	}
}

func TestSynthesizeFallbackOnEmptyResponse(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{Response: "   \n  "})

	tmpl, err := s.Synthesize(context.Background(), model.TemplatePostEvent, prospect)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Body == "" {
		t.Error("empty provider response must yield fallback content")
	}
}

func TestSynthesizeFallbackIsDeterministic(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{Err: errors.New("down")})

	a, _ := s.Synthesize(context.Background(), model.TemplateFollowup, prospect)
	b, _ := s.Synthesize(context.Background(), model.TemplateFollowup, prospect)
	if a.Subject != b.Subject || a.Body != b.Body || a.TrustStoryScore != b.TrustStoryScore {
		t.Error("fallback content must be deterministic for identical inputs")
	}
}

func TestSynthesizeWordCount(t *testing.T) {
	responses := []string{
		"Subject: Hello\n\nOne two three four five.",
		"Header line\nBody with   odd   spacing\nand newlines here",
	}
	for _, resp := range responses {
		s := synth.NewTemplateSynthesizer(&MockProvider{Response: resp})
		tmpl, err := s.Synthesize(context.Background(), model.TemplateIntro, prospect)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(strings.Fields(tmpl.Body)); tmpl.WordCount != got {
			t.Errorf("word count %d does not match body token count %d for %q", tmpl.WordCount, got, tmpl.Body)
		}
	}
}

func TestSynthesizeUnknownTemplateType(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{Response: "irrelevant"})

	_, err := s.Synthesize(context.Background(), model.TemplateType("carrier_pigeon"), prospect)
	if err == nil {
		t.Fatal("expected validation error for unknown template type")
	}
	var validation *appErrors.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestSynthesizeSuggestedTiming(t *testing.T) {
	s := synth.NewTemplateSynthesizer(&MockProvider{Response: "Subject: x\n\nbody"})

	tmpl, err := s.Synthesize(context.Background(), model.TemplatePreEvent, prospect)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.SuggestedTiming != "7 days before the event" {
		t.Errorf("unexpected timing label: %q", tmpl.SuggestedTiming)
	}
}
