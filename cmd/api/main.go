package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/confirmation"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/crm"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/session"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways and adapters
	confirmClient := confirmation.NewClient(
		os.Getenv("CONFIRMATION_FN_KEY"), os.Getenv("CONFIRMATION_FN_URL"),
	)

	// RabbitMQ is optional: without it, leads are still captured, only the
	// CRM sync stands down.
	var producer usecase.QueueProducerInterface
	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Printf("RabbitMQ unavailable, CRM sync disabled: %v", err)
		rabbitMQ = nil
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// 3. Worker (consumes the queue and pushes to the CRM)
		crmClient := crm.NewClient(os.Getenv("CRM_API_TOKEN"), os.Getenv("CRM_API_URL"))
		worker := queue.NewWorker(rabbitMQ.Ch, crmClient)
		go worker.Start(queue.QueueName)
	}

	// 4. Sessions and use cases
	sessions := session.NewManager(30 * time.Minute)
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, confirmClient, producer)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(submitUC, sessions)
	validationHandler := handlers.NewValidationHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, connOrNil(rabbitMQ))

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(corsOptions()))

	r.Post("/leads", leadHandler.HandleSubmit)
	r.Get("/leads/session", leadHandler.HandleState)
	r.Post("/leads/reset", leadHandler.HandleReset)
	r.Post("/leads/validate", validationHandler.Handle)
	r.Get("/industries", leadHandler.HandleIndustries)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("Lead capture API listening on %s", port)
	http.ListenAndServe(port, r)
}

// corsOptions lists the form origins explicitly. Sessions ride on cookies,
// so credentialed requests must never pair with a wildcard origin.
func corsOptions() cors.Options {
	origins := []string{"http://localhost:5173"}
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowCredentials: true,
	}
}

func connOrNil(r *queue.RabbitMQ) *amqp091.Connection {
	if r == nil {
		return nil
	}
	return r.Conn
}
