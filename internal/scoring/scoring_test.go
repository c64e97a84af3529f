package scoring_test

import (
	"strings"
	"testing"

	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/scoring"
)

var prospect = model.PersonalizationData{
	FirstName:  "Alice",
	LastName:   "Smith",
	Company:    "Acme Corp",
	PainPoints: []string{"Slow Regression Cycles"},
}

func TestScoreBaseline(t *testing.T) {
	score, _ := scoring.Score(model.TemplateIntro, "Generic note with nothing specific in it.", prospect)
	if score != 50 {
		t.Errorf("expected baseline 50, got %d", score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	body := "Hi Alice, I recently helped a client at Acme Corp with slow regression cycles."
	s1, r1 := scoring.Score(model.TemplateIntro, body, prospect)
	s2, r2 := scoring.Score(model.TemplateIntro, body, prospect)
	if s1 != s2 || r1 != r2 {
		t.Errorf("scoring not deterministic: (%d, %q) vs (%d, %q)", s1, r1, s2, r2)
	}
}

func TestScoreBonuses(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected int
	}{
		{"first name", "Alice, thought of you.", 60},
		{"company", "Saw the news about Acme Corp.", 60},
		{"pain point case-insensitive", "Dealing with SLOW REGRESSION CYCLES is rough.", 65},
		{"experiential", "We reduced cycle time by half.", 60},
		{"narrative", "Here's an example from last week.", 60},
		{"social proof", "One client saw this too.", 55},
	}

	for _, tc := range cases {
		score, _ := scoring.Score(model.TemplateIntro, tc.body, prospect)
		if score != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.expected, score)
		}
	}
}

func TestScoreClampedTo100(t *testing.T) {
	// Every bonus at once: 50 + 10 + 10 + 15 + 10 + 10 + 5 = 110.
	body := "Hi Alice, recently I helped a client team at Acme Corp fix slow regression cycles."
	score, _ := scoring.Score(model.TemplateIntro, body, prospect)
	if score != 100 {
		t.Errorf("expected clamp to 100, got %d", score)
	}
}

func TestScoreRange(t *testing.T) {
	bodies := []string{
		"",
		"short",
		"Hi Alice, recently I helped a client team at Acme Corp fix slow regression cycles.",
		strings.Repeat("filler ", 200),
	}
	for _, body := range bodies {
		score, _ := scoring.Score(model.TemplateFollowup, body, prospect)
		if score < 0 || score > 100 {
			t.Errorf("score %d out of range for body %q", score, body)
		}
	}
}

func TestEmptyFieldsEarnNoBonus(t *testing.T) {
	// strings.Contains(body, "") is always true; empty personalization
	// fields must not score.
	empty := model.PersonalizationData{}
	score, _ := scoring.Score(model.TemplateIntro, "Completely generic note.", empty)
	if score != 50 {
		t.Errorf("expected 50 for empty personalization, got %d", score)
	}
}

func TestRationaleTiers(t *testing.T) {
	body := "Hi Alice, recently I helped a client team at Acme Corp fix slow regression cycles."
	score, rationale := scoring.Score(model.TemplatePreEvent, body, prospect)
	if scoring.Tier(score) != "High" {
		t.Fatalf("expected High tier for score %d", score)
	}
	if !strings.Contains(rationale, "High") {
		t.Errorf("rationale should name the tier, got %q", rationale)
	}
	if !strings.Contains(rationale, "pre_event") {
		t.Errorf("rationale should name the template type, got %q", rationale)
	}
}

func TestTierBoundaries(t *testing.T) {
	if tier := scoring.Tier(80); tier != "High" {
		t.Errorf("expected High at 80, got %s", tier)
	}
	if tier := scoring.Tier(79); tier != "Medium" {
		t.Errorf("expected Medium at 79, got %s", tier)
	}
	if tier := scoring.Tier(60); tier != "Medium" {
		t.Errorf("expected Medium at 60, got %s", tier)
	}
	if tier := scoring.Tier(59); tier != "Low" {
		t.Errorf("expected Low at 59, got %s", tier)
	}
}
