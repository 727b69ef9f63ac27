package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordseek/wordseek/internal/config"
	"github.com/wordseek/wordseek/internal/httpserver"
	"github.com/wordseek/wordseek/internal/leaderboard"
	"github.com/wordseek/wordseek/internal/play"
	"github.com/wordseek/wordseek/internal/store"
	"github.com/wordseek/wordseek/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := config.Load(getEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	vocab, err := words.Load(cfg.Words.File, cfg.Words.Length)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	meta, err := words.LoadMeta(cfg.Words.MetaFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word metadata")
	}

	db, err := openDB(cfg.SQLite.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	var cache *leaderboard.RankCache
	if cfg.Redis.Enabled {
		cache, err = leaderboard.NewRankCache(context.Background(), &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer cache.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Leaderboard.Timezone).Msg("bad reference timezone")
	}

	lb := leaderboard.NewService(
		leaderboard.NewSQLiteStore(db),
		cache,
		leaderboard.PolicyByName(cfg.Leaderboard.Policy),
		loc,
		log.With().Str("component", "leaderboard").Logger(),
	)

	recorder := play.NewRecorder(lb, log.With().Str("component", "recorder").Logger())
	defer recorder.Stop()

	mgr := play.NewManager(
		store.NewRegistry(),
		vocab,
		recorder,
		cfg.Game.MaxAttempts,
		log.With().Str("component", "play").Logger(),
	)

	srv := httpserver.New(mgr, lb, vocab, meta, httpserver.Options{
		DefaultLimit: cfg.Leaderboard.DefaultLimit,
		MaxLimit:     cfg.Leaderboard.MaxLimit,
		GuessRate:    cfg.Game.GuessesPerSec,
		GuessBurst:   cfg.Game.GuessBurst,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, log.With().Str("component", "http").Logger())

	port := getEnv("PORT", "")
	if port == "" {
		port = strconv.Itoa(cfg.Server.Port)
	}
	log.Info().
		Str("port", port).
		Int("words", vocab.Stats()).
		Str("policy", cfg.Leaderboard.Policy).
		Msg("starting wordseek")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
