package model

// SequenceDefinition names a reusable template ordering plus cadence.
// DayOffsets are signed day counts relative to the campaign anchor instant;
// negative offsets schedule a message before the anchor (pre-event sends).
// Invariant: len(TemplateTypes) == len(DayOffsets).
type SequenceDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TemplateTypes []TemplateType `json:"template_types"`
	DayOffsets    []int          `json:"day_offsets"`
}
