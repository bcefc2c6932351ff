package main

import (
	"log"

	"github.com/dejavas-ai/arena/ai"
	"github.com/dejavas-ai/arena/api"
	"github.com/dejavas-ai/arena/api/handlers"
	"github.com/dejavas-ai/arena/config"
	"github.com/dejavas-ai/arena/core"
	"github.com/dejavas-ai/arena/insights"
	"github.com/dejavas-ai/arena/monitoring"
	"github.com/dejavas-ai/arena/registry"
	"github.com/dejavas-ai/arena/scanner"
	"github.com/dejavas-ai/arena/storage"
	"github.com/dejavas-ai/arena/utils"
)

func main() {
	// Connect the event broker before bootstrapping the rest of the services.
	if url := config.NATSURL(); url != "" {
		core.SetupNATS(url)
		defer core.NatsBrokerInstance.Close()
		log.Println("Arena started with NATS messaging enabled.")
	} else {
		log.Println("NATS_URL not set; event publishing disabled.")
	}

	if dir := config.DataDir(); dir != "" {
		store, err := storage.GetDBStorage(dir)
		if err != nil {
			log.Fatalf("Failed to open session archive: %v", err)
		}
		defer storage.CloseAll()
		registry.EnableArchive(store)
	}

	engine := ai.NewEngine(config.OpenAIKey()).WithSerpKey(config.SerpAPIKey())
	monitor := monitoring.NewSystemMonitor()
	h := handlers.NewHandler(engine, scanner.New(), monitor)
	insightsHandler := insights.NewHandler(insights.NewExtractor(engine), monitor)

	port := utils.FindAvailableAPIPort()
	log.Printf("Arena API listening on port %d", port)
	if err := api.StartServer(port, h, insightsHandler); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
