package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"stopline-planner-service/internal/adapters/eventlog"
	"stopline-planner-service/internal/adapters/publish"
	"stopline-planner-service/internal/api"
	"stopline-planner-service/internal/config"
	"stopline-planner-service/internal/domain"
	"stopline-planner-service/internal/platform/db"
	"stopline-planner-service/internal/ports"
	"stopline-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres event log, Redis factor
// feed) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	stopLinesPath := config.Get("STOPLINES_PATH", "data/stoplines.json")

	// Per-line overrides in the stop-lines file win over these.
	defaults := domain.PlannerParam{
		StopMargin:             config.GetFloat("STOP_MARGIN", 0.0),
		HoldStopMarginDistance: config.GetFloat("HOLD_STOP_MARGIN_DISTANCE", 1.0),
		StopDuration:           config.GetDurationSec("STOP_DURATION_SEC", 2*time.Second),
		StopLineExtendLength:   config.GetFloat("STOP_LINE_EXTEND_LENGTH", 5.0),
	}
	frontOverhang := config.GetFloat("FRONT_OVERHANG", 1.0)

	store, recorder, err := openEventStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	var publisher ports.FactorPublisher = publish.NopFactorPublisher{}
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		p := publish.NewRedisFactorPublisher(addr, 100)
		defer p.Close()
		publisher = p
		log.Printf("Publishing velocity factors redis_addr=%s", addr)
	}

	detector := services.NewStoppedDetector(
		config.GetFloat("STOPPED_VELOCITY_THRESHOLD", 0.01),
		config.GetDurationSec("STOPPED_TIME_WINDOW_SEC", 500*time.Millisecond),
	)

	planner := services.NewPlanner(frontOverhang, detector, recorder, publisher)

	modules, err := services.LoadStopLineModules(stopLinesPath, defaults)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range modules {
		planner.Register(m)
	}
	log.Printf("Registered stop lines count=%d", len(modules))

	router := api.NewRouter(planner, recorder, services.SystemClock{})

	// Write timeout stays generous: a cycle over a long trajectory with
	// a cold event store is the slow path.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openEventStore prefers Postgres when DATABASE_URL is set and falls
// back to the embedded SQLite file otherwise. Each backend gets its
// own recorder: the two differ in placeholder style and schema DDL.
func openEventStore() (*sql.DB, ports.StopEventRecorder, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		store, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := eventlog.InitPostgresSchema(store); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, eventlog.NewSQLStopEventRecorder(store), nil
	}

	dbPath := config.Get("DB_PATH", "data/planner.db")

	store, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("openEventStore: open sqlite database %q: %w", dbPath, err)
	}

	if err := store.Ping(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("openEventStore: verify sqlite connection to %q: %w", dbPath, err)
	}

	if err := eventlog.InitSchema(store); err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, eventlog.NewSqliteStopEventRecorder(store), nil
}
