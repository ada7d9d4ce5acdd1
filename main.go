package main

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/studysets/studysets-api/config"
	"github.com/studysets/studysets-api/handlers"
	"github.com/studysets/studysets-api/middleware"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("failed to load config", "error", err)
	}

	db, err := config.Connect(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	h := &handlers.DBHandler{DB: db, Log: sugar, AllowSeed: cfg.AllowSeed}
	mux := http.NewServeMux()

	// Seed (destructive, gated behind ALLOW_SEED)
	mux.HandleFunc("GET /init", h.InitDatabase)

	// Sets
	mux.HandleFunc("POST /sets", h.CreateSet)
	mux.HandleFunc("GET /sets", h.GetPublicSets)
	mux.HandleFunc("GET /sets/{setID}", h.GetSetByID)
	mux.HandleFunc("DELETE /sets/{setID}", h.DeleteSetByID)

	// Favorites
	mux.HandleFunc("POST /usersets", h.CreateUserSet)
	mux.HandleFunc("GET /usersets", h.GetUserSets)

	// Cards
	mux.HandleFunc("POST /cards", h.CreateCard)
	mux.HandleFunc("GET /cards", h.GetCardsForSet)
	mux.HandleFunc("GET /cards/learn", h.LearnCards)

	// Learnings
	mux.HandleFunc("POST /learnings", h.CreateLearning)
	mux.HandleFunc("GET /learnings", h.GetLearnings)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With", "Accept", "Origin"},
		MaxAge:         86400,
	}).Handler(middleware.WithLogging(sugar)(mux))

	addr := "0.0.0.0:" + cfg.Port
	sugar.Infow("Starting server", "addr", addr, "allowSeed", cfg.AllowSeed)

	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
