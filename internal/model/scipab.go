package model

import "time"

// IntentSnapshot is the account-intent picture produced by the research
// provider for one (company, platform) pair.
type IntentSnapshot struct {
	Company    string    `json:"company"`
	Platform   string    `json:"platform"`
	Signals    []string  `json:"signals"`
	Summary    string    `json:"summary"`
	CapturedAt time.Time `json:"captured_at"`
}

// ResearchSnapshot carries the raw research findings supplied alongside the
// intent snapshot when synthesizing a framework.
type ResearchSnapshot struct {
	Findings    []string  `json:"findings"`
	Sources     []string  `json:"sources"`
	CollectedAt time.Time `json:"collected_at"`
}

// Data-quality tags on a synthesized framework.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

type ScipabSituation struct {
	CurrentState string `json:"current_state"`
	Context      string `json:"context"`
	Observation  string `json:"observation"`
}

type ScipabComplication struct {
	Challenge string `json:"challenge"`
	Cost      string `json:"cost"`
	Urgency   string `json:"urgency"`
}

type ScipabImplication struct {
	BusinessImpact string `json:"business_impact"`
	RiskOfInaction string `json:"risk_of_inaction"`
}

type ScipabPosition struct {
	Approach       string `json:"approach"`
	Differentiator string `json:"differentiator"`
}

type ScipabAsk struct {
	Action    string `json:"action"`
	Timeframe string `json:"timeframe"`
}

type ScipabBenefit struct {
	Outcome  string `json:"outcome"`
	Metric   string `json:"metric"`
	Timeline string `json:"timeline"`
}

// ScipabFramework is a six-part persuasion framework
// (Situation/Complication/Implication/Position/Ask/Benefit) for one
// (company, platform, research-snapshot) triple. Immutable once returned.
type ScipabFramework struct {
	Company      string             `json:"company"`
	Platform     string             `json:"platform"`
	Situation    ScipabSituation    `json:"situation"`
	Complication ScipabComplication `json:"complication"`
	Implication  ScipabImplication  `json:"implication"`
	Position     ScipabPosition     `json:"position"`
	Ask          ScipabAsk          `json:"ask"`
	Benefit      ScipabBenefit      `json:"benefit"`
	Confidence   int                `json:"confidence"`
	DataQuality  string             `json:"data_quality"`
}
