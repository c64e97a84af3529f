package model

// TemplateType identifies one step archetype in an outreach sequence.
type TemplateType string

const (
	TemplateIntro       TemplateType = "intro"
	TemplateFollowup    TemplateType = "followup"
	TemplatePreEvent    TemplateType = "pre_event"
	TemplatePostEvent   TemplateType = "post_event"
	TemplateNoShowRecap TemplateType = "no_show_recap"
	TemplateNurture     TemplateType = "nurture"
)

// MessageTemplate is the output of synthesis for a single sequence step.
// WordCount is always computed from Body, never taken from the provider.
type MessageTemplate struct {
	TemplateType    TemplateType `json:"template_type"`
	Subject         string       `json:"subject"`
	Body            string       `json:"body"`
	TrustStoryScore int          `json:"trust_story_score"`
	ScoreRationale  string       `json:"score_rationale"`
	SuggestedTiming string       `json:"suggested_timing"`
	WordCount       int          `json:"word_count"`
}
