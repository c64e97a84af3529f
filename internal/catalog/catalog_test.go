package catalog_test

import (
	"errors"
	"testing"

	"github.com/eloquasai/outreach-backend/internal/catalog"
	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
)

func TestGetKnownSequences(t *testing.T) {
	c := catalog.New()

	cases := []struct {
		id      string
		types   []model.TemplateType
		offsets []int
	}{
		{"general", []model.TemplateType{model.TemplateIntro, model.TemplateFollowup}, []int{0, 3}},
		{"event", []model.TemplateType{model.TemplatePreEvent, model.TemplatePostEvent, model.TemplateNoShowRecap}, []int{-7, 1, 3}},
		{"nurture", []model.TemplateType{model.TemplateNurture}, []int{14}},
	}

	for _, tc := range cases {
		def, err := c.Get(tc.id)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", tc.id, err)
		}
		if len(def.TemplateTypes) != len(def.DayOffsets) {
			t.Errorf("%s: template/offset length mismatch: %d vs %d", tc.id, len(def.TemplateTypes), len(def.DayOffsets))
		}
		if len(def.TemplateTypes) != len(tc.types) {
			t.Fatalf("%s: expected %d steps, got %d", tc.id, len(tc.types), len(def.TemplateTypes))
		}
		for i := range tc.types {
			if def.TemplateTypes[i] != tc.types[i] {
				t.Errorf("%s step %d: expected %s, got %s", tc.id, i, tc.types[i], def.TemplateTypes[i])
			}
			if def.DayOffsets[i] != tc.offsets[i] {
				t.Errorf("%s offset %d: expected %d, got %d", tc.id, i, tc.offsets[i], def.DayOffsets[i])
			}
		}
	}
}

func TestGetUnknownSequence(t *testing.T) {
	c := catalog.New()

	_, err := c.Get("does-not-exist")
	if err == nil {
		t.Fatal("expected error for unknown sequence")
	}
	var notFound *appErrors.ErrSequenceNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrSequenceNotFound, got %T", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	c := catalog.New()

	def, _ := c.Get("general")
	def.DayOffsets[0] = 99
	def.TemplateTypes[0] = "mutated"

	fresh, _ := c.Get("general")
	if fresh.DayOffsets[0] != 0 {
		t.Errorf("catalog definition was mutated through a returned copy")
	}
	if fresh.TemplateTypes[0] != model.TemplateIntro {
		t.Errorf("catalog template order was mutated through a returned copy")
	}
}
