package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/eloquasai/outreach-backend/internal/catalog"
	"github.com/eloquasai/outreach-backend/internal/db"
	"github.com/eloquasai/outreach-backend/internal/handler"
	"github.com/eloquasai/outreach-backend/internal/provider"
	"github.com/eloquasai/outreach-backend/internal/queue"
	"github.com/eloquasai/outreach-backend/internal/repository"
	"github.com/eloquasai/outreach-backend/internal/service"
	"github.com/eloquasai/outreach-backend/internal/store"
	"github.com/eloquasai/outreach-backend/internal/synth"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Generation/research provider: Gemini when a key is configured,
	// otherwise the offline provider (everything degrades to fallback
	// content, nothing breaks).
	var generation provider.GenerationProvider
	var research provider.ResearchProvider
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := provider.NewGeminiProvider(apiKey, 0)
		if err != nil {
			log.Fatalf("failed to create Gemini provider: %v", err)
		}
		defer gemini.Close()
		generation = gemini
		research = gemini
		log.Println("✅ Gemini provider configured")
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, using offline fallback content")
		generation = provider.OfflineProvider{}
		research = provider.OfflineProvider{}
	}

	// Campaign store: Postgres when configured, in-memory otherwise.
	var campaignStore store.CampaignStore
	if db.Configured() {
		conn, err := db.Connect()
		if err != nil {
			log.Fatalf("failed to connect to DB: %v", err)
		}
		defer conn.Close()
		repo := &repository.CampaignRepository{DB: conn}
		if err := repo.EnsureSchema(); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		campaignStore = repo
		log.Println("✅ Connected to database")
	} else {
		campaignStore = store.NewMemoryStore()
		log.Println("⚠️ No database configured, campaigns held in memory")
	}

	outreachService := &service.OutreachService{
		Catalog:  catalog.New(),
		Synth:    synth.NewTemplateSynthesizer(generation),
		Scipab:   synth.NewScipabSynthesizer(generation),
		Research: research,
		Store:    campaignStore,
	}

	q := queue.NewInMemoryQueue()
	queue.StartMessageEventSubscriber(q, outreachService)

	campaignHandler := &handler.CampaignHandler{
		Service: outreachService,
		Queue:   q,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignHandler.CreateCampaign)
	r.Get("/campaigns", campaignHandler.ListCampaigns)
	r.Get("/campaigns/{id}", campaignHandler.GetCampaign)
	r.Patch("/campaigns/{id}/status", campaignHandler.UpdateCampaignStatus)
	r.Post("/campaigns/{id}/messages/{messageID}/events", campaignHandler.TrackMessageEvent)

	// Analytics and SCIPAB
	r.Get("/analytics", campaignHandler.GetAnalytics)
	r.Post("/scipab", campaignHandler.SynthesizeScipab)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
