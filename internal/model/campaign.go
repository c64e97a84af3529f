package model

import "time"

// CampaignStatus tracks a campaign through its lifecycle.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Valid reports whether s is one of the known campaign statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

// Campaign is a scheduled, ordered set of personalized messages targeting
// one prospect. Messages never exist outside their campaign.
type Campaign struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	ProspectID      string              `json:"prospect_id"`
	SequenceID      string              `json:"sequence_id"`
	Personalization PersonalizationData `json:"personalization"`
	Messages        []GeneratedMessage  `json:"messages"`
	Status          CampaignStatus      `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	Performance     CampaignPerformance `json:"performance"`
}

// CampaignPerformance is derived from the message list and recomputed on
// every engagement event. OpenRate and ReplyRate are percentages in [0,100]
// and are zero while nothing has been sent.
type CampaignPerformance struct {
	SentCount      int     `json:"sent_count"`
	OpenRate       float64 `json:"open_rate"`
	ReplyRate      float64 `json:"reply_rate"`
	MeetingsBooked int     `json:"meetings_booked"`
	AvgTrustScore  float64 `json:"avg_trust_score"`
}

// Clone returns a deep copy so stored campaigns cannot be mutated through
// returned references.
func (c *Campaign) Clone() *Campaign {
	out := *c
	out.Personalization = c.Personalization.clone()
	out.Messages = make([]GeneratedMessage, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = m.clone()
	}
	return &out
}
