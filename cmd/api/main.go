package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/dental-crm/internal/config"
	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/database"
	"github.com/xavierca1/dental-crm/internal/infra/http/handlers"
	"github.com/xavierca1/dental-crm/internal/infra/http/middleware"
	"github.com/xavierca1/dental-crm/internal/infra/mail"
	"github.com/xavierca1/dental-crm/internal/infra/memory"
	"github.com/xavierca1/dental-crm/internal/infra/queue"
	"github.com/xavierca1/dental-crm/internal/registry"
	"github.com/xavierca1/dental-crm/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	// 1. Registry and stores
	reg := registry.NewDefault()

	var cardRepo entity.CardRepositoryInterface
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()
		cardRepo = database.NewCardRepository(db, reg)
	} else {
		cardRepo = memory.NewCardRepository(reg)
	}

	userStore := memory.NewUserStore()
	seedAdmin(userStore, cfg)
	eventRepo := memory.NewEventRepository()
	productRepo := memory.NewProductRepository()

	// 2. Queue and notifications (optional)
	var producer usecase.QueueProducerInterface
	var rabbit *queue.RabbitMQ
	if cfg.RabbitURL != "" {
		var err error
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("rabbitmq connection failed: %v", err)
		}
		defer rabbit.Close()
		producer = queue.NewProducer(rabbit.Conn, rabbit.Ch)

		if cfg.SMTPHost != "" {
			sender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
			worker := queue.NewWorker(rabbit.Ch, sender, userStore)
			go worker.Start(queue.QueueName)
		} else {
			log.Printf("SMTP not configured, card events will stay on the queue")
		}
	}

	// 3. Use cases
	createUC := usecase.NewCreateCardUseCase(cardRepo, reg)
	updateUC := usecase.NewUpdateCardUseCase(cardRepo, reg)
	deleteUC := usecase.NewDeleteCardUseCase(cardRepo)
	moveUC := usecase.NewMoveCardUseCase(cardRepo, reg, producer)
	listUC := usecase.NewListCardsUseCase(cardRepo)
	boardUC := usecase.NewBoardUseCase(cardRepo, reg)
	reviewUC := usecase.NewReviewRegistrationUseCase(cardRepo, producer)
	settingsUC := usecase.NewPipelineSettingsUseCase(reg, cardRepo)

	// 4. Handlers
	cardHandler := handlers.NewCardHandler(createUC, updateUC, deleteUC, moveUC, listUC, reviewUC)
	boardHandler := handlers.NewBoardHandler(boardUC)
	pipelineHandler := handlers.NewPipelineHandler(reg, settingsUC)
	userHandler := handlers.NewUserHandler(userStore)
	eventHandler := handlers.NewEventHandler(eventRepo)
	productHandler := handlers.NewProductHandler(productRepo)

	var healthHandler *handlers.HealthHandler
	if rabbit != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbit.Conn)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil)
	}

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))
	r.Use(middleware.CurrentUser(userStore))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", cardHandler.HandleList)
		r.Post("/", cardHandler.HandleCreate)
		r.Get("/{id}", cardHandler.HandleGet)
		r.Patch("/{id}", cardHandler.HandleUpdate)
		r.Delete("/{id}", cardHandler.HandleDelete)
		r.Post("/{id}/move", cardHandler.HandleMove)
		r.Post("/{id}/registration", cardHandler.HandleReviewRegistration)
	})

	r.Get("/board/{pipelineId}", boardHandler.HandleGet)

	r.Route("/pipelines", func(r chi.Router) {
		r.Get("/", pipelineHandler.HandleList)
		r.Post("/", pipelineHandler.HandleCreate)
		r.Delete("/{id}", pipelineHandler.HandleRemovePipeline)
		r.Post("/{id}/stages", pipelineHandler.HandleAddStage)
		r.Patch("/{id}/stages/{stageId}", pipelineHandler.HandleRenameStage)
		r.Delete("/{id}/stages/{stageId}", pipelineHandler.HandleRemoveStage)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Post("/", userHandler.HandleCreate)
		r.Patch("/{id}", userHandler.HandleUpdate)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.HandleList)
		r.Post("/", eventHandler.HandleCreate)
		r.Patch("/{id}", eventHandler.HandleUpdate)
		r.Delete("/{id}", eventHandler.HandleDelete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.HandleList)
		r.Post("/", productHandler.HandleCreate)
	})

	log.Printf("dental-crm API listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin guarantees a fresh instance has one admin account; its id is
// logged so the operator can set the X-User-ID header.
func seedAdmin(store *memory.UserStore, cfg config.Config) {
	admin := entity.NewUser(cfg.AdminName, cfg.AdminEmail, entity.RoleAdmin, nil)
	if err := store.Create(admin); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	log.Printf("seeded admin user %s (%s)", admin.ID, admin.Email)
}
