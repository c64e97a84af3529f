package model

// PersonalizationData is the prospect snapshot a campaign is generated from.
// It is captured once at campaign creation and never mutated afterwards.
type PersonalizationData struct {
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Company           string   `json:"company"`
	Role              string   `json:"role"`
	Industry          string   `json:"industry"`
	PainPoints        []string `json:"pain_points"`
	RecentAchievement string   `json:"recent_achievement,omitempty"`
	SharedConnection  string   `json:"shared_connection,omitempty"`
	MutualInterest    string   `json:"mutual_interest,omitempty"`
	EventName         string   `json:"event_name,omitempty"`
	EventDate         string   `json:"event_date,omitempty"`
}

func (p PersonalizationData) clone() PersonalizationData {
	out := p
	if p.PainPoints != nil {
		out.PainPoints = append([]string(nil), p.PainPoints...)
	}
	return out
}
