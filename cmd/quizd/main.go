package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/alvinwan/goquiz/internal/api/http"
	"github.com/alvinwan/goquiz/internal/config"
	"github.com/alvinwan/goquiz/internal/db"
	"github.com/alvinwan/goquiz/internal/registry"
	"github.com/alvinwan/goquiz/internal/state"
	"github.com/alvinwan/goquiz/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := registry.NewSQLStore(dbh, cfg.DBDriver)

	// --- Quiz sources ---
	reg, err := registry.Load(cfg.QuizConfig, registry.Sample())
	if err != nil {
		log.Fatalf("quiz registry: %v", err)
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- State tokens ---
	if cfg.StateSecret == config.DevStateSecret {
		log.Printf("STATE_SECRET not set, state tokens use the development secret")
	}
	signer := state.NewSigner(cfg.StateSecret, cfg.StateTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/quizzes", api.ListQuizzesHandler(reg, store))
	r.Post("/quizzes", api.UploadQuizHandler(reg, store, bs, cfg.ShuffleDefault))
	r.Get("/quizzes/{source}", api.GetQuizHandler(reg, store, signer))
	r.Post("/quizzes/{source}/check", api.CheckQuizHandler(reg, store, signer))
	r.Get("/quizzes/{source}/export", api.ExportQuizHandler(reg, store, bs))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, sources=%d)", cfg.HTTPAddr, cfg.DBDriver, len(reg.List()))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
