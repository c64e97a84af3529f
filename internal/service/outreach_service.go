package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eloquasai/outreach-backend/internal/catalog"
	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/provider"
	"github.com/eloquasai/outreach-backend/internal/store"
	"github.com/eloquasai/outreach-backend/internal/synth"
)

// OutreachService is the engine's public surface: campaign creation and
// scheduling, lifecycle management, engagement tracking, analytics, and
// SCIPAB synthesis.
type OutreachService struct {
	Catalog  *catalog.Catalog
	Synth    *synth.TemplateSynthesizer
	Scipab   *synth.ScipabSynthesizer
	Research provider.ResearchProvider
	Store    store.CampaignStore
}

type CreateCampaignParams struct {
	UserID          string
	ProspectID      string
	SequenceID      string
	Personalization model.PersonalizationData
	// Anchor is the instant day offsets are applied to. Zero means "now".
	// For event sequences the caller supplies the event date here so that
	// negative offsets land before the event, not before record creation.
	Anchor time.Time
}

// campaignTransitions is the allowed campaign lifecycle: draft -> active,
// active <-> paused any number of times, completed terminal.
var campaignTransitions = map[model.CampaignStatus][]model.CampaignStatus{
	model.CampaignDraft:     {model.CampaignActive},
	model.CampaignActive:    {model.CampaignPaused, model.CampaignCompleted},
	model.CampaignPaused:    {model.CampaignActive, model.CampaignCompleted},
	model.CampaignCompleted: {},
}

// CreateCampaign resolves the sequence definition, synthesizes every step,
// schedules each message at anchor + offset days, and persists the draft
// campaign. Step synthesis runs concurrently; the message list is always
// assembled in definition order. Provider failures never fail the campaign.
func (s *OutreachService) CreateCampaign(ctx context.Context, params CreateCampaignParams) (*model.Campaign, error) {
	def, err := s.Catalog.Get(params.SequenceID)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	anchor := params.Anchor
	if anchor.IsZero() {
		anchor = createdAt
	}

	templates := make([]model.MessageTemplate, len(def.TemplateTypes))
	synthErrs := make([]error, len(def.TemplateTypes))
	var wg sync.WaitGroup
	for i, templateType := range def.TemplateTypes {
		wg.Add(1)
		go func(i int, templateType model.TemplateType) {
			defer wg.Done()
			templates[i], synthErrs[i] = s.Synth.Synthesize(ctx, templateType, params.Personalization)
		}(i, templateType)
	}
	wg.Wait()

	for _, err := range synthErrs {
		if err != nil {
			return nil, err
		}
	}

	messages := make([]model.GeneratedMessage, len(templates))
	for i, tmpl := range templates {
		messages[i] = model.GeneratedMessage{
			ID:              uuid.NewString(),
			MessageTemplate: tmpl,
			ScheduledAt:     anchor.AddDate(0, 0, def.DayOffsets[i]),
			Status:          model.StatusScheduled,
		}
	}

	c := &model.Campaign{
		ID:              uuid.NewString(),
		UserID:          params.UserID,
		ProspectID:      params.ProspectID,
		SequenceID:      def.ID,
		Personalization: params.Personalization,
		Messages:        messages,
		Status:          model.CampaignDraft,
		CreatedAt:       createdAt,
	}
	c.Performance = RecomputePerformance(c.Messages, 0)

	if err := s.Store.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCampaign fetches a single campaign by id.
func (s *OutreachService) GetCampaign(id string) (*model.Campaign, error) {
	return s.Store.Get(id)
}

// GetCampaignsForUser returns the user's campaigns, newest first.
func (s *OutreachService) GetCampaignsForUser(userID string) ([]*model.Campaign, error) {
	return s.Store.ListByUser(userID)
}

// UpdateCampaignStatus moves a campaign through its lifecycle. Transitions
// outside the table are rejected with a validation error; setting the
// current status again is a no-op.
func (s *OutreachService) UpdateCampaignStatus(campaignID string, status model.CampaignStatus) (*model.Campaign, error) {
	if !status.Valid() {
		return nil, appErrors.NewValidation("status", fmt.Sprintf("unknown campaign status %q", status))
	}
	return s.Store.Update(campaignID, func(c *model.Campaign) error {
		if c.Status == status {
			return nil
		}
		for _, allowed := range campaignTransitions[c.Status] {
			if allowed == status {
				c.Status = status
				return nil
			}
		}
		return appErrors.NewValidation("status", fmt.Sprintf("cannot move campaign from %s to %s", c.Status, status))
	})
}

// TrackMessagePerformance applies an engagement event to a message and
// recomputes campaign performance. Unknown campaign or message ids are
// silent no-ops: replayed or stale events must never fail the pipeline.
// Message status only moves forward; regressions are ignored.
func (s *OutreachService) TrackMessagePerformance(campaignID, messageID string, event model.MessageEvent) {
	_, err := s.Store.Update(campaignID, func(c *model.Campaign) error {
		if event == model.EventMeetingBooked {
			c.Performance = RecomputePerformance(c.Messages, c.Performance.MeetingsBooked+1)
			return nil
		}

		status, ok := event.Status()
		if !ok {
			log.Println("⚠️ unknown message event", event, "- skipped")
			return nil
		}

		for i := range c.Messages {
			if c.Messages[i].ID != messageID {
				continue
			}
			if !c.Messages[i].Status.CanAdvanceTo(status) {
				return nil
			}
			c.Messages[i].Status = status
			if status == model.StatusSent {
				now := time.Now().UTC()
				c.Messages[i].SentAt = &now
			}
			c.Performance = RecomputePerformance(c.Messages, c.Performance.MeetingsBooked)
			return nil
		}
		// Unknown message id: nothing to track.
		return nil
	})
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			log.Println("⚠️ tracking event for unknown campaign", campaignID, "- skipped")
			return
		}
		log.Println("⚠️ failed to track message event:", err)
	}
}

// AnalyticsSummary aggregates a user's campaigns.
type AnalyticsSummary struct {
	TotalCampaigns    int     `json:"total_campaigns"`
	ActiveCampaigns   int     `json:"active_campaigns"`
	AverageTrustScore float64 `json:"average_trust_score"`
	AverageReplyRate  float64 `json:"average_reply_rate"`
	TotalMessagesSent int     `json:"total_messages_sent"`
}

func (s *OutreachService) GetAnalytics(userID string) (*AnalyticsSummary, error) {
	campaigns, err := s.Store.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{TotalCampaigns: len(campaigns)}
	var trustSum, replySum float64
	for _, c := range campaigns {
		if c.Status == model.CampaignActive {
			summary.ActiveCampaigns++
		}
		trustSum += c.Performance.AvgTrustScore
		replySum += c.Performance.ReplyRate
		summary.TotalMessagesSent += c.Performance.SentCount
	}
	if len(campaigns) > 0 {
		summary.AverageTrustScore = trustSum / float64(len(campaigns))
		summary.AverageReplyRate = replySum / float64(len(campaigns))
	}
	return summary, nil
}

// SynthesizeScipab builds the persuasion framework from the supplied
// snapshots. It never fails; validation problems land on the fallback.
func (s *OutreachService) SynthesizeScipab(ctx context.Context, intent model.IntentSnapshot, research model.ResearchSnapshot) model.ScipabFramework {
	return s.Scipab.Synthesize(ctx, intent, research)
}

// ScipabForCompany researches the company first, then synthesizes. A
// research failure degrades straight to the fallback framework, the same
// way a generation failure would.
func (s *OutreachService) ScipabForCompany(ctx context.Context, company, platform string, research model.ResearchSnapshot) model.ScipabFramework {
	if s.Research == nil {
		log.Println("⚠️ no research provider configured - using fallback framework for", company)
		return synth.FallbackFramework(company, platform)
	}
	intent, err := s.Research.Research(ctx, company, platform)
	if err != nil {
		log.Println("⚠️ research provider failed for", company, "- using fallback:", err)
		return synth.FallbackFramework(company, platform)
	}
	return s.Scipab.Synthesize(ctx, *intent, research)
}
