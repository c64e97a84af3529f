package scoring

import (
	"fmt"
	"strings"

	"github.com/eloquasai/outreach-backend/internal/model"
)

// Trust-story scoring is a pure heuristic: identical inputs always produce
// identical output. Baseline 50, each bonus applied at most once, result
// clamped to [0,100].

const baseScore = 50

var experientialWords = []string{"learned", "helped", "reduced", "improved"}

var narrativeMarkers = []string{"story", "example", "recently", "last week"}

var socialProofWords = []string{"client", "customer", "team"}

var tierNotes = map[string]string{
	"High":   "strong personal relevance backed by concrete experience and proof",
	"Medium": "solid personalization with room for more specific experience or proof",
	"Low":    "generic copy with weak personalization signals",
}

// Score rates body against the personalization snapshot and returns the
// trust-story score with its rationale. The rationale is keyed by template
// type and the derived tier.
func Score(templateType model.TemplateType, body string, p model.PersonalizationData) (int, string) {
	score := baseScore
	lower := strings.ToLower(body)

	if p.FirstName != "" && strings.Contains(body, p.FirstName) {
		score += 10
	}
	if p.Company != "" && strings.Contains(body, p.Company) {
		score += 10
	}
	if containsAnyFold(lower, p.PainPoints) {
		score += 15
	}
	if containsAny(lower, experientialWords) {
		score += 10
	}
	if containsAny(lower, narrativeMarkers) {
		score += 10
	}
	if containsAny(lower, socialProofWords) {
		score += 5
	}

	// Baseline plus every bonus reaches 110, so the clamp is load-bearing.
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	tier := Tier(score)
	rationale := fmt.Sprintf("%s trust-story signal for %s outreach: %s", tier, templateType, tierNotes[tier])
	return score, rationale
}

// Tier buckets a score: High >= 80, Medium >= 60, else Low.
func Tier(score int) string {
	switch {
	case score >= 80:
		return "High"
	case score >= 60:
		return "Medium"
	default:
		return "Low"
	}
}

// containsAny checks lowercased body against already-lowercase needles.
func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// containsAnyFold lowercases needles before matching; pain points arrive in
// caller casing.
func containsAnyFold(lower string, needles []string) bool {
	for _, n := range needles {
		n = strings.TrimSpace(strings.ToLower(n))
		if n != "" && strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
