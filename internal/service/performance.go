package service

import "github.com/eloquasai/outreach-backend/internal/model"

// RecomputePerformance derives campaign metrics from the full message list.
// It is a pure recomputation, idempotent by construction: sent counts every
// message that has left "scheduled" (bounces included), open rate counts
// opened and replied messages, and both rates are zero while nothing has
// been sent. MeetingsBooked has no message status and is carried through.
func RecomputePerformance(messages []model.GeneratedMessage, meetingsBooked int) model.CampaignPerformance {
	var sent, opened, replied, scoreSum int
	for _, m := range messages {
		scoreSum += m.TrustStoryScore
		if m.Status != model.StatusScheduled {
			sent++
		}
		switch m.Status {
		case model.StatusOpened:
			opened++
		case model.StatusReplied:
			opened++
			replied++
		}
	}

	perf := model.CampaignPerformance{
		SentCount:      sent,
		MeetingsBooked: meetingsBooked,
	}
	if len(messages) > 0 {
		perf.AvgTrustScore = float64(scoreSum) / float64(len(messages))
	}
	if sent > 0 {
		perf.OpenRate = 100 * float64(opened) / float64(sent)
		perf.ReplyRate = 100 * float64(replied) / float64(sent)
	}
	return perf
}
