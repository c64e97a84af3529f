package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/eloquasai/outreach-backend/internal/catalog"
	"github.com/eloquasai/outreach-backend/internal/db"
	"github.com/eloquasai/outreach-backend/internal/model"
	"github.com/eloquasai/outreach-backend/internal/provider"
	"github.com/eloquasai/outreach-backend/internal/repository"
	"github.com/eloquasai/outreach-backend/internal/service"
	"github.com/eloquasai/outreach-backend/internal/synth"
)

// Seeds one demo campaign per sequence type for a demo user, then replays a
// few engagement events so dashboards have non-zero rates to show.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	conn, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	repo := &repository.CampaignRepository{DB: conn}
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal(err)
	}

	// Offline provider: seeding should be deterministic and not spend API
	// quota, so every message uses fallback content.
	svc := &service.OutreachService{
		Catalog: catalog.New(),
		Synth:   synth.NewTemplateSynthesizer(provider.OfflineProvider{}),
		Scipab:  synth.NewScipabSynthesizer(provider.OfflineProvider{}),
		Store:   repo,
	}

	userID := os.Getenv("SEED_USER_ID")
	if userID == "" {
		userID = "demo-user"
	}

	personalization := model.PersonalizationData{
		FirstName:  "Jordan",
		LastName:   "Avery",
		Company:    "Northwind Systems",
		Role:       "VP of Quality Engineering",
		Industry:   "enterprise software",
		PainPoints: []string{"slow regression cycles", "manual test maintenance"},
		EventName:  "QA Summit",
		EventDate:  time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
	}

	ctx := context.Background()
	for i, sequenceID := range []string{"general", "event", "nurture"} {
		campaign, err := svc.CreateCampaign(ctx, service.CreateCampaignParams{
			UserID:          userID,
			ProspectID:      fmt.Sprintf("demo-prospect-%d", i+1),
			SequenceID:      sequenceID,
			Personalization: personalization,
		})
		if err != nil {
			log.Fatalf("failed to seed %s campaign: %v", sequenceID, err)
		}
		fmt.Printf("Seeded: %s campaign %s (%d messages)\n", sequenceID, campaign.ID, len(campaign.Messages))

		if sequenceID == "general" {
			if _, err := svc.UpdateCampaignStatus(campaign.ID, model.CampaignActive); err != nil {
				log.Fatal(err)
			}
			svc.TrackMessagePerformance(campaign.ID, campaign.Messages[0].ID, model.EventSent)
			svc.TrackMessagePerformance(campaign.ID, campaign.Messages[0].ID, model.EventOpened)
		}
	}

	fmt.Println("Database seeding completed successfully!")
}
