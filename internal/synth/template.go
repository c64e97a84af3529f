package synth

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/provider"
	"github.com/eloquasai/outreach-backend/internal/scoring"
)

const defaultSynthTimeout = 20 * time.Second

type templateProfile struct {
	Description string
	Context     string
	Timing      string
}

// templateProfiles is the closed set of step archetypes. An unknown
// template type is the only synthesis failure surfaced to the caller.
var templateProfiles = map[model.TemplateType]templateProfile{
	model.TemplateIntro: {
		Description: "a first-touch introduction that earns a reply",
		Context:     "the prospect has never heard from the sender",
		Timing:      "Day 0",
	},
	model.TemplateFollowup: {
		Description: "a short follow-up that adds one new piece of value",
		Context:     "the intro email went out a few days ago with no reply",
		Timing:      "Day 3",
	},
	model.TemplatePreEvent: {
		Description: "a pre-event note proposing to meet at the event",
		Context:     "both parties will attend the same upcoming event",
		Timing:      "7 days before the event",
	},
	model.TemplatePostEvent: {
		Description: "a post-event note referencing a moment from the event",
		Context:     "the event just wrapped up",
		Timing:      "1 day after the event",
	},
	model.TemplateNoShowRecap: {
		Description: "a recap for someone who registered but did not attend",
		Context:     "the prospect missed the event they signed up for",
		Timing:      "3 days after the event",
	},
	model.TemplateNurture: {
		Description: "a low-pressure check-in that keeps the relationship warm",
		Context:     "the active sequence ended without a meeting",
		Timing:      "Day 14",
	},
}

// fallbackCopy keys the deterministic fallback subject and lead line by
// template type. Bodies are completed from personalization fields.
var fallbackCopy = map[model.TemplateType]struct {
	Subject string
	Lead    string
}{
	model.TemplateIntro: {
		Subject: "Quick thought on %s",
		Lead:    "I've been following %s's work and wanted to introduce myself.",
	},
	model.TemplateFollowup: {
		Subject: "Following up on my note to %s",
		Lead:    "Circling back in case my last note got buried - I recently helped a team facing the same questions %s is working through.",
	},
	model.TemplatePreEvent: {
		Subject: "Meeting up at the event - %s",
		Lead:    "I saw %s will be at the upcoming event and would love to find a few minutes to compare notes.",
	},
	model.TemplatePostEvent: {
		Subject: "Great seeing the %s team",
		Lead:    "It was great crossing paths with the %s team at the event.",
	},
	model.TemplateNoShowRecap: {
		Subject: "What you missed - recap for %s",
		Lead:    "Sorry we missed you at the event - here's a quick recap of what the %s team would have found most relevant.",
	},
	model.TemplateNurture: {
		Subject: "Checking in with %s",
		Lead:    "No agenda here - just checking in on how things are progressing at %s.",
	},
}

// TemplateSynthesizer turns personalization data into message templates via
// the generation provider, degrading to deterministic fallback content on
// any provider failure. It never propagates a provider error.
type TemplateSynthesizer struct {
	Provider provider.GenerationProvider
	Timeout  time.Duration
}

func NewTemplateSynthesizer(p provider.GenerationProvider) *TemplateSynthesizer {
	return &TemplateSynthesizer{Provider: p, Timeout: defaultSynthTimeout}
}

// Synthesize produces the template for one sequence step. Only an unknown
// template type is an error; everything the provider can do wrong is
// recovered locally.
func (s *TemplateSynthesizer) Synthesize(ctx context.Context, templateType model.TemplateType, p model.PersonalizationData) (model.MessageTemplate, error) {
	profile, ok := templateProfiles[templateType]
	if !ok {
		return model.MessageTemplate{}, appErrors.NewValidation("template_type", fmt.Sprintf("unknown template type %q", templateType))
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSynthTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	raw, err := s.Provider.Generate(callCtx, buildPrompt(templateType, profile, p))
	cancel()

	subject, body := resolveOrFallback(raw, err, templateType, p)

	score, rationale := scoring.Score(templateType, body, p)

	return model.MessageTemplate{
		TemplateType:    templateType,
		Subject:         subject,
		Body:            body,
		TrustStoryScore: score,
		ScoreRationale:  rationale,
		SuggestedTiming: profile.Timing,
		WordCount:       len(strings.Fields(body)),
	}, nil
}

func buildPrompt(templateType model.TemplateType, profile templateProfile, p model.PersonalizationData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert B2B sales writer. Write %s.\n", profile.Description)
	fmt.Fprintf(&b, "Context: %s.\n\n", profile.Context)
	fmt.Fprintf(&b, "Prospect: %s %s, %s at %s (%s industry).\n", p.FirstName, p.LastName, p.Role, p.Company, p.Industry)
	if len(p.PainPoints) > 0 {
		fmt.Fprintf(&b, "Known pain points: %s.\n", strings.Join(p.PainPoints, "; "))
	}
	if p.RecentAchievement != "" {
		fmt.Fprintf(&b, "Recent achievement worth acknowledging: %s.\n", p.RecentAchievement)
	}
	if p.SharedConnection != "" {
		fmt.Fprintf(&b, "Shared connection: %s.\n", p.SharedConnection)
	}
	if p.MutualInterest != "" {
		fmt.Fprintf(&b, "Mutual interest: %s.\n", p.MutualInterest)
	}
	if p.EventName != "" {
		fmt.Fprintf(&b, "Event: %s on %s.\n", p.EventName, p.EventDate)
	}
	b.WriteString("\nOutput format: first line \"Subject: <subject>\", then a blank line, then the email body. Under 125 words, plain text, no markdown.")
	return b.String()
}

// resolveOrFallback is the degrade point: a provider error, an empty
// response, or unparseable output all land on the deterministic fallback.
func resolveOrFallback(raw string, err error, templateType model.TemplateType, p model.PersonalizationData) (subject, body string) {
	if err != nil {
		log.Println("⚠️ generation provider failed for", templateType, "- using fallback:", err)
		return fallbackContent(templateType, p)
	}
	if strings.TrimSpace(raw) == "" {
		log.Println("⚠️ generation provider returned empty response for", templateType, "- using fallback")
		return fallbackContent(templateType, p)
	}
	return parseResponse(raw, templateType)
}

// parseResponse splits a free-text provider response into subject and body:
// an explicit "Subject:" marker wins, otherwise the first non-empty line is
// the subject. If that leaves no body, the whole response becomes the body
// under a default subject.
func parseResponse(raw string, templateType model.TemplateType) (subject, body string) {
	text := strings.TrimSpace(raw)
	lines := strings.Split(text, "\n")

	markerAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if lower := strings.ToLower(trimmed); strings.HasPrefix(lower, "subject:") {
			subject = strings.TrimSpace(trimmed[len("subject:"):])
			markerAt = i
			break
		}
	}

	if markerAt >= 0 {
		body = strings.TrimSpace(strings.Join(lines[markerAt+1:], "\n"))
	} else {
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				subject = strings.TrimSpace(line)
				body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
				break
			}
		}
	}

	if body == "" {
		body = text
		subject = defaultSubject(templateType)
	}
	return subject, body
}

func defaultSubject(templateType model.TemplateType) string {
	return fmt.Sprintf("A note from our team (%s)", strings.ReplaceAll(string(templateType), "_", " "))
}

// fallbackContent builds a minimal usable draft from personalization fields
// and a stock phrase keyed by template type.
func fallbackContent(templateType model.TemplateType, p model.PersonalizationData) (subject, body string) {
	copyFor, ok := fallbackCopy[templateType]
	if !ok {
		copyFor = fallbackCopy[model.TemplateIntro]
	}

	company := p.Company
	if company == "" {
		company = "your company"
	}
	name := p.FirstName
	if name == "" {
		name = "there"
	}

	subject = fmt.Sprintf(copyFor.Subject, company)
	lead := fmt.Sprintf(copyFor.Lead, company)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n%s\n\n", name, lead)
	if len(p.PainPoints) > 0 {
		fmt.Fprintf(&b, "Teams in %s usually bring up %s, and we've helped them make real progress there.\n\n", orDefault(p.Industry, "your space"), p.PainPoints[0])
	} else {
		b.WriteString("We've helped teams in similar situations, and I'd be glad to share what worked for them.\n\n")
	}
	b.WriteString("Would you be open to a quick chat?\n\nBest regards")
	return subject, b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
