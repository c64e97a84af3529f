package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/provider"
)

// ScipabSynthesizer turns account-intent research into a six-part
// persuasion framework with the same validate-or-fallback discipline as
// template synthesis: a framework missing any section is rejected wholesale
// and replaced by the conservative fallback, never returned half-filled.
type ScipabSynthesizer struct {
	Provider provider.GenerationProvider
	Timeout  time.Duration
}

func NewScipabSynthesizer(p provider.GenerationProvider) *ScipabSynthesizer {
	return &ScipabSynthesizer{Provider: p, Timeout: defaultSynthTimeout}
}

func (s *ScipabSynthesizer) Synthesize(ctx context.Context, intent model.IntentSnapshot, research model.ResearchSnapshot) model.ScipabFramework {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSynthTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	raw, err := s.Provider.Generate(callCtx, buildScipabPrompt(intent, research))
	cancel()
	if err != nil {
		log.Println("⚠️ scipab generation failed for", intent.Company, "- using fallback:", err)
		return FallbackFramework(intent.Company, intent.Platform)
	}

	fw, err := parseScipab(raw, intent)
	if err != nil {
		log.Println("⚠️ scipab response rejected for", intent.Company, "- using fallback:", err)
		return FallbackFramework(intent.Company, intent.Platform)
	}
	return fw
}

func buildScipabPrompt(intent model.IntentSnapshot, research model.ResearchSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a B2B sales strategist. Build a SCIPAB persuasion framework for %s regarding %s.\n\n", intent.Company, intent.Platform)
	if intent.Summary != "" {
		fmt.Fprintf(&b, "Intent summary: %s\n", intent.Summary)
	}
	if len(intent.Signals) > 0 {
		fmt.Fprintf(&b, "Intent signals: %s\n", strings.Join(intent.Signals, "; "))
	}
	if len(research.Findings) > 0 {
		fmt.Fprintf(&b, "Research findings: %s\n", strings.Join(research.Findings, "; "))
	}
	b.WriteString(`
Respond with ONLY a JSON object, no markdown fences, in exactly this shape:
{
  "situation": {"current_state": "", "context": "", "observation": ""},
  "complication": {"challenge": "", "cost": "", "urgency": ""},
  "implication": {"business_impact": "", "risk_of_inaction": ""},
  "position": {"approach": "", "differentiator": ""},
  "ask": {"action": "", "timeframe": ""},
  "benefit": {"outcome": "", "metric": "", "timeline": ""},
  "confidence": 0,
  "data_quality": "high|medium|low"
}
Every section must be filled with specific, evidence-backed statements.`)
	return b.String()
}

// scipabPayload mirrors the JSON the provider is asked for.
type scipabPayload struct {
	Situation    model.ScipabSituation    `json:"situation"`
	Complication model.ScipabComplication `json:"complication"`
	Implication  model.ScipabImplication  `json:"implication"`
	Position     model.ScipabPosition     `json:"position"`
	Ask          model.ScipabAsk          `json:"ask"`
	Benefit      model.ScipabBenefit      `json:"benefit"`
	Confidence   int                      `json:"confidence"`
	DataQuality  string                   `json:"data_quality"`
}

func parseScipab(raw string, intent model.IntentSnapshot) (model.ScipabFramework, error) {
	var payload scipabPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return model.ScipabFramework{}, fmt.Errorf("malformed scipab JSON: %w", err)
	}

	// Every section needs at least one non-empty field or the whole result
	// is rejected.
	checks := []struct {
		name   string
		fields []string
	}{
		{"situation", []string{payload.Situation.CurrentState, payload.Situation.Context, payload.Situation.Observation}},
		{"complication", []string{payload.Complication.Challenge, payload.Complication.Cost, payload.Complication.Urgency}},
		{"implication", []string{payload.Implication.BusinessImpact, payload.Implication.RiskOfInaction}},
		{"position", []string{payload.Position.Approach, payload.Position.Differentiator}},
		{"ask", []string{payload.Ask.Action, payload.Ask.Timeframe}},
		{"benefit", []string{payload.Benefit.Outcome, payload.Benefit.Metric, payload.Benefit.Timeline}},
	}
	for _, check := range checks {
		if !anyFilled(check.fields) {
			return model.ScipabFramework{}, fmt.Errorf("missing %s section", check.name)
		}
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	quality := strings.ToLower(strings.TrimSpace(payload.DataQuality))
	switch quality {
	case model.QualityHigh, model.QualityMedium, model.QualityLow:
	default:
		quality = model.QualityMedium
	}

	return model.ScipabFramework{
		Company:      intent.Company,
		Platform:     intent.Platform,
		Situation:    payload.Situation,
		Complication: payload.Complication,
		Implication:  payload.Implication,
		Position:     payload.Position,
		Ask:          payload.Ask,
		Benefit:      payload.Benefit,
		Confidence:   confidence,
		DataQuality:  quality,
	}, nil
}

func anyFilled(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return true
		}
	}
	return false
}

// stripFences drops a surrounding markdown code fence if the model added
// one despite instructions.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// FallbackFramework is the conservative framework used whenever generation
// or validation fails. Every field states that analysis is pending;
// confidence is zero and data quality low.
func FallbackFramework(company, platform string) model.ScipabFramework {
	if company == "" {
		company = "the account"
	}
	if platform == "" {
		platform = "their platform"
	}
	return model.ScipabFramework{
		Company:  company,
		Platform: platform,
		Situation: model.ScipabSituation{
			CurrentState: fmt.Sprintf("Analysis of %s's current %s landscape is pending", company, platform),
			Context:      "Research data has not been gathered yet",
			Observation:  "No verified observations are available",
		},
		Complication: model.ScipabComplication{
			Challenge: "Specific challenges have not been identified yet",
			Cost:      "Cost of the status quo is not yet quantified",
			Urgency:   "Urgency signals are pending research",
		},
		Implication: model.ScipabImplication{
			BusinessImpact: "Business impact assessment is pending",
			RiskOfInaction: "Risk profile will be established once research completes",
		},
		Position: model.ScipabPosition{
			Approach:       "A tailored approach will be proposed after analysis",
			Differentiator: "Differentiators will be matched to verified needs",
		},
		Ask: model.ScipabAsk{
			Action:    "Schedule a discovery conversation to gather first-hand context",
			Timeframe: "At the prospect's convenience",
		},
		Benefit: model.ScipabBenefit{
			Outcome:  "A grounded, evidence-backed framework once analysis completes",
			Metric:   "To be established during discovery",
			Timeline: "To be established during discovery",
		},
		Confidence:  0,
		DataQuality: model.QualityLow,
	}
}
