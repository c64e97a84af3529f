package catalog

import (
	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
)

// Catalog is the authoritative registry of sequence definitions. Both the
// template ordering and the day-offset cadence live here; nothing else in
// the engine hard-codes either. Adding a sequence type is one new row.
type Catalog struct {
	defs map[string]model.SequenceDefinition
}

func New() *Catalog {
	return &Catalog{
		defs: map[string]model.SequenceDefinition{
			"general": {
				ID:            "general",
				Name:          "General Outreach",
				TemplateTypes: []model.TemplateType{model.TemplateIntro, model.TemplateFollowup},
				DayOffsets:    []int{0, 3},
			},
			"event": {
				ID:            "event",
				Name:          "Event Outreach",
				TemplateTypes: []model.TemplateType{model.TemplatePreEvent, model.TemplatePostEvent, model.TemplateNoShowRecap},
				DayOffsets:    []int{-7, 1, 3},
			},
			"nurture": {
				ID:            "nurture",
				Name:          "Long-Term Nurture",
				TemplateTypes: []model.TemplateType{model.TemplateNurture},
				DayOffsets:    []int{14},
			},
		},
	}
}

// Get returns a copy of the definition so callers cannot mutate the catalog.
func (c *Catalog) Get(id string) (model.SequenceDefinition, error) {
	def, ok := c.defs[id]
	if !ok {
		return model.SequenceDefinition{}, appErrors.NewSequenceNotFound(id)
	}
	out := def
	out.TemplateTypes = append([]model.TemplateType(nil), def.TemplateTypes...)
	out.DayOffsets = append([]int(nil), def.DayOffsets...)
	return out, nil
}

// IDs lists the registered sequence ids.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	return ids
}
