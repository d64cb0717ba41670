package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/pulseboard/dash-services/configs"
	"github.com/pulseboard/dash-services/internal/dashsvc/broker"
	svcconfig "github.com/pulseboard/dash-services/internal/dashsvc/config"
	"github.com/pulseboard/dash-services/internal/dashsvc/db"
	handlers "github.com/pulseboard/dash-services/internal/dashsvc/handlers"
	"github.com/pulseboard/dash-services/internal/dashsvc/history"
	"github.com/pulseboard/dash-services/internal/dashsvc/producer"
	"github.com/pulseboard/dash-services/internal/dashsvc/service"
	"github.com/pulseboard/dash-services/internal/dashsvc/store"
	"github.com/pulseboard/dash-services/internal/dashsvc/store/memory"
	mongodb "github.com/pulseboard/dash-services/internal/db"
	nats "github.com/pulseboard/dash-services/internal/nats"
	"github.com/pulseboard/dash-services/internal/sdkgate"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "dash"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// probe the integration SDK once; read-only afterwards
	sdkgate.Probe()

	var (
		cardStore   service.CardStore
		bundleStore service.BundleStore
		taskStore   service.TaskStore
	)

	switch cfg.StoreDriver {
	case "memory":
		mem := memory.NewStore()
		cardStore, bundleStore, taskStore = mem, mem, mem
		log.Printf("memory store driver selected")
	default:
		// pg connection
		dbpool, err := db.Connect()
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer db.ClosePool()
		log.Printf("pg connection established successfully")

		cardStore = store.NewCardStore(dbpool)
		bundleStore = store.NewBundleStore(dbpool)
		taskStore = store.NewTaskStore(dbpool)
	}

	// optional envelope history, kept in mongo behind a config flag
	var historyStore service.HistoryStore
	if cfg.HistoryEnabled {
		mdb, cancel, err := mongodb.ConnectToDB()
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer cancel()
		mongodb.CreateTTLIndexForCollection(mdb, history.Collection)
		historyStore = history.NewStore(mdb, cfg.HistoryTTL)
		log.Printf("envelope history enabled")
	}

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	b := broker.NewBroker(n.Conn)

	cardService := service.NewCardService(cardStore)
	bundleService := service.NewBundleService(bundleStore, historyStore)
	resolveService := service.NewResolveService(cardStore, bundleService)
	ingestService := service.NewIngestService(cardStore, bundleService, producer.NewRegistry(), b)
	taskService := service.NewTaskService(taskStore)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, resolveService, ingestService, taskService)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("DASH_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
