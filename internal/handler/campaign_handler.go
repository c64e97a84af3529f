package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/queue"
	"github.com/eloquasai/outreach-backend/internal/service"
)

// CampaignHandler holds the dependencies for campaign-related HTTP handlers
type CampaignHandler struct {
	Service *service.OutreachService
	// Queue, when set, carries engagement events asynchronously; otherwise
	// they are applied inline.
	Queue queue.Queue
}

func statusForError(err error) int {
	var notFoundCampaign *appErrors.ErrCampaignNotFound
	var notFoundSequence *appErrors.ErrSequenceNotFound
	var validation *appErrors.ValidationError
	switch {
	case errors.As(err, &notFoundCampaign), errors.As(err, &notFoundSequence):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// CreateCampaign handles creating a new campaign
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID          string                    `json:"user_id"`
		ProspectID      string                    `json:"prospect_id"`
		SequenceID      string                    `json:"sequence_id"`
		Personalization model.PersonalizationData `json:"personalization"`
		AnchorAt        *string                   `json:"anchor_at,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || payload.ProspectID == "" {
		http.Error(w, "user_id and prospect_id are required", http.StatusBadRequest)
		return
	}

	params := service.CreateCampaignParams{
		UserID:          payload.UserID,
		ProspectID:      payload.ProspectID,
		SequenceID:      payload.SequenceID,
		Personalization: payload.Personalization,
	}
	if payload.AnchorAt != nil {
		anchor, err := time.Parse(time.RFC3339, *payload.AnchorAt)
		if err != nil {
			http.Error(w, "invalid anchor_at: "+err.Error(), http.StatusBadRequest)
			return
		}
		params.Anchor = anchor
	}

	campaign, err := h.Service.CreateCampaign(r.Context(), params)
	if err != nil {
		http.Error(w, "failed to create campaign: "+err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// ListCampaigns returns all campaigns for a user, newest first
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	campaigns, err := h.Service.GetCampaignsForUser(userID)
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": campaigns,
	})
}

// GetCampaign returns details of a single campaign by ID
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		http.Error(w, "failed to fetch campaign: "+err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// UpdateCampaignStatus moves a campaign through its lifecycle
func (h *CampaignHandler) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Status model.CampaignStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := h.Service.UpdateCampaignStatus(id, payload.Status)
	if err != nil {
		http.Error(w, "failed to update status: "+err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// TrackMessageEvent records an engagement event for a message
func (h *CampaignHandler) TrackMessageEvent(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	messageID := chi.URLParam(r, "messageID")

	var payload struct {
		Event model.MessageEvent `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if h.Queue != nil {
		job := queue.MessageEventJob{CampaignID: campaignID, MessageID: messageID, Event: payload.Event}
		if err := h.Queue.Publish(queue.TopicMessageEvents, job); err != nil {
			log.Println("⚠️ failed to enqueue message event, applying inline:", err)
			h.Service.TrackMessagePerformance(campaignID, messageID, payload.Event)
		}
	} else {
		h.Service.TrackMessagePerformance(campaignID, messageID, payload.Event)
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"campaign_id": campaignID,
		"message_id":  messageID,
		"event":       payload.Event,
	})
}

// GetAnalytics returns the per-user aggregate metrics
func (h *CampaignHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	summary, err := h.Service.GetAnalytics(userID)
	if err != nil {
		http.Error(w, "failed to compute analytics: "+err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// SynthesizeScipab builds a persuasion framework. Snapshots may be supplied
// inline; otherwise the research provider is consulted for the company.
func (h *CampaignHandler) SynthesizeScipab(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Company  string                  `json:"company"`
		Platform string                  `json:"platform"`
		Intent   *model.IntentSnapshot   `json:"intent,omitempty"`
		Research *model.ResearchSnapshot `json:"research,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	research := model.ResearchSnapshot{}
	if payload.Research != nil {
		research = *payload.Research
	}

	var framework model.ScipabFramework
	if payload.Intent != nil {
		framework = h.Service.SynthesizeScipab(r.Context(), *payload.Intent, research)
	} else {
		if payload.Company == "" {
			http.Error(w, "company is required when no intent snapshot is supplied", http.StatusBadRequest)
			return
		}
		framework = h.Service.ScipabForCompany(r.Context(), payload.Company, payload.Platform, research)
	}

	writeJSON(w, http.StatusOK, framework)
}
