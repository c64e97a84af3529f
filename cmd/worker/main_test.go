package main

import (
	"context"
	"errors"
	"testing"

	"github.com/streadway/amqp"

	"github.com/eloquasai/outreach-backend/internal/catalog"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/provider"
	"github.com/eloquasai/outreach-backend/internal/service"
	"github.com/eloquasai/outreach-backend/internal/store"
	"github.com/eloquasai/outreach-backend/internal/synth"
)

func testService(t *testing.T) (*service.OutreachService, *model.Campaign) {
	t.Helper()
	svc := &service.OutreachService{
		Catalog: catalog.New(),
		Synth:   synth.NewTemplateSynthesizer(provider.OfflineProvider{}),
		Scipab:  synth.NewScipabSynthesizer(provider.OfflineProvider{}),
		Store:   store.NewMemoryStore(),
	}
	c, err := svc.CreateCampaign(context.Background(), service.CreateCampaignParams{
		UserID:     "u1",
		ProspectID: "p1",
		SequenceID: "general",
		Personalization: model.PersonalizationData{
			FirstName: "Alice",
			Company:   "Acme Corp",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return svc, c
}

func TestProcessDeliveryAppliesEvent(t *testing.T) {
	svc, c := testService(t)
	body := []byte(`{"campaign_id":"` + c.ID + `","message_id":"` + c.Messages[0].ID + `","event":"sent"}`)

	if err := processDelivery(body, svc); err != nil {
		t.Fatal(err)
	}

	got, _ := svc.GetCampaign(c.ID)
	if got.Messages[0].Status != model.StatusSent {
		t.Errorf("expected sent, got %s", got.Messages[0].Status)
	}
	if got.Performance.SentCount != 1 {
		t.Errorf("expected sent count 1, got %d", got.Performance.SentCount)
	}
}

func TestProcessDeliveryInvalidJSON(t *testing.T) {
	svc, _ := testService(t)

	if err := processDelivery([]byte("{broken"), svc); err == nil {
		t.Error("expected error for undecodable payload")
	}
}

func TestProcessDeliveryMissingFields(t *testing.T) {
	svc, _ := testService(t)

	if err := processDelivery([]byte(`{"message_id":"m1"}`), svc); err == nil {
		t.Error("expected error for job without campaign_id and event")
	}
}

func TestProcessDeliveryUnknownCampaignSucceeds(t *testing.T) {
	svc, _ := testService(t)
	body := []byte(`{"campaign_id":"ghost","message_id":"m1","event":"opened"}`)

	// Unknown ids are skipped inside tracking; the job must not requeue.
	if err := processDelivery(body, svc); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestRetryCountReadsHeaderWidths(t *testing.T) {
	tests := []struct {
		name    string
		headers amqp.Table
		want    int
	}{
		{"no headers", amqp.Table{}, 0},
		{"int", amqp.Table{"x-retry-count": 2}, 2},
		{"int32", amqp.Table{"x-retry-count": int32(1)}, 1},
		{"int64", amqp.Table{"x-retry-count": int64(3)}, 3},
		{"wrong type", amqp.Table{"x-retry-count": "many"}, 0},
	}
	for _, tc := range tests {
		if got := retryCount(tc.headers); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRetryCountReachesCap(t *testing.T) {
	// Each failed delivery republishes with the counter bumped by one, so
	// an undecodable payload is dropped after a bounded number of passes.
	headers := amqp.Table{}
	passes := 0
	for retryCount(headers) < maxEventRetries {
		headers["x-retry-count"] = int32(retryCount(headers) + 1)
		passes++
		if passes > maxEventRetries {
			t.Fatal("retry counter never reaches the cap")
		}
	}
	if passes != maxEventRetries {
		t.Errorf("expected %d passes before dropping, got %d", maxEventRetries, passes)
	}
}

func TestOfflineProviderAlwaysErrors(t *testing.T) {
	_, err := provider.OfflineProvider{}.Generate(context.Background(), "anything")
	if !errors.Is(err, provider.ErrOffline) {
		t.Errorf("expected ErrOffline, got %v", err)
	}
}
