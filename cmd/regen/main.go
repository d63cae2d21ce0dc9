package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"obp_engine/internal/adapters/observability"
	redisad "obp_engine/internal/adapters/redis"
	"obp_engine/internal/app"
	"obp_engine/internal/shared"
	mysqlrepo "obp_engine/internal/storage/mysql"
)

// Bulk-regenerates every room type's combination table, e.g. after an
// age-group catalog change.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().Int("workers", cfg.RegenWorkers).Msg("regen starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewTableService(repo, cache)

	roomTypes, err := repo.ListRoomTypes(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list room types failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.RegenWorkers))
	var wg sync.WaitGroup

	for _, rt := range roomTypes {
		rt := rt

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			entries, vres, err := svc.Regenerate(ctx, rt.ID)
			if err != nil {
				log.Warn().Int64("room_type", rt.ID).Err(err).Msg("regenerate failed")
				return
			}
			observability.ObserveTableSize(len(entries))
			if !vres.IsValid {
				observability.ObserveValidationFailure()
				log.Warn().Int64("room_type", rt.ID).Strs("violations", vres.Errors).Msg("regenerated table failed validation")
			}
			log.Info().Int64("room_type", rt.ID).Int("entries", len(entries)).Msg("regenerated")
		}()
	}

	wg.Wait()
	log.Info().Msg("regeneration completed")
}
