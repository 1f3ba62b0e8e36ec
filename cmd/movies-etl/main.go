// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Movies-etl is the entry point for the movie-catalogue replication
worker. It reads change events from the Postgres content store and
keeps the movies, genres, and persons search indices in sync.

Usage:

	go run cmd/movies-etl/main.go

The environment variables are documented on [config.Config].

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Connect to the content store (Postgres) and the Cursor Store.
 4. Sink: Connect to the search engine and bootstrap its indices.
 5. Wiring: Compose the three pipelines.
 6. Run: Execute pipelines (per ETL_MODE) until signalled to stop.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/cursor"
	"github.com/taibuivan/movies-etl/internal/etl"
	"github.com/taibuivan/movies-etl/internal/platform/config"
	"github.com/taibuivan/movies-etl/internal/platform/constants"
	pgstore "github.com/taibuivan/movies-etl/internal/platform/postgres"
	"github.com/taibuivan/movies-etl/internal/searchsink"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("movies_etl_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. Content store
	pool, err := pgstore.NewPool(startupCtx, cfg.PostgresDSN(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	reader := content.NewReader(pool, log)

	// # 4. Cursor store
	cursorStore, err := cursor.NewFileStore(cfg.ETLFileState, log)
	if err != nil {
		return fmt.Errorf("load cursor store: %w", err)
	}

	// # 5. Search sink
	sink, err := searchsink.NewClient(startupCtx, cfg.ElasticsearchURL(), cfg.BulkChunkSize, log)
	if err != nil {
		return fmt.Errorf("connect to search engine: %w", err)
	}

	if err := bootstrapIndices(startupCtx, sink); err != nil {
		return fmt.Errorf("bootstrap indices: %w", err)
	}

	// # 6. Pipeline wiring
	clock := etl.SystemClock{}
	pipelines := wirePipelines(cfg, reader, cursorStore, sink, clock, log)

	selected, err := selectPipelines(cfg.ETLMode, pipelines)
	if err != nil {
		return err
	}

	// # 7. Lifecycle handling
	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer appCancel()

	log.Info("movies_etl_running", slog.String("etl_mode", cfg.ETLMode), slog.Int("pipelines", len(selected)))

	group, groupCtx := errgroup.WithContext(appCtx)
	for _, p := range selected {
		p := p
		group.Go(func() error { return p.Run(groupCtx) })
	}

	if err := group.Wait(); err != nil && appCtx.Err() == nil {
		return fmt.Errorf("pipeline failure: %w", err)
	}

	log.Info("movies_etl_shutdown_complete")
	return nil
}

// runnable is the common surface every pipeline driver exposes.
type runnable interface {
	Run(ctx context.Context) error
}

func bootstrapIndices(ctx context.Context, sink *searchsink.Client) error {
	if err := sink.EnsureIndex(ctx, constants.IndexMovies, searchsink.MovieMapping()); err != nil {
		return err
	}
	if err := sink.EnsureIndex(ctx, constants.IndexGenres, searchsink.GenreMapping()); err != nil {
		return err
	}
	return sink.EnsureIndex(ctx, constants.IndexPersons, searchsink.PersonMapping())
}

// wirePipelines composes all three pipeline drivers. Each producer's
// cursor key is scoped to (pipeline, table) — the movies pipeline's
// genre/person-watching producers and the standalone genres/persons
// pipelines' producers track the same tables independently, never
// sharing a cursor.
func wirePipelines(cfg *config.Config, reader *content.Reader, store cursor.Store, sink *searchsink.Client, clock etl.Clock, log *slog.Logger) map[string]runnable {
	movieLoader := etl.NewLoader(sink, constants.IndexMovies)
	genreLoader := etl.NewLoader(sink, constants.IndexGenres)
	personLoader := etl.NewLoader(sink, constants.IndexPersons)

	filmWorkProducer := etl.NewProducer(constants.StreamKey(constants.PipelineMovies, constants.TableFilmWork), cfg.ETLDefaultDate, cfg.BatchLimit, reader.StreamFilmWorkChanges, store, log)
	genreProducerForMovies := etl.NewProducer(constants.StreamKey(constants.PipelineMovies, constants.TableGenre), cfg.ETLDefaultDate, cfg.BatchLimit, reader.StreamGenreChanges, store, log)
	personProducerForMovies := etl.NewProducer(constants.StreamKey(constants.PipelineMovies, constants.TablePerson), cfg.ETLDefaultDate, cfg.BatchLimit, reader.StreamPersonChanges, store, log)

	genreEnricher := etl.NewEnricher(reader.ResolveFilmWorkIDsViaGenre, cfg.BatchLimit)
	personEnricher := etl.NewEnricher(reader.ResolveFilmWorkIDsViaPerson, cfg.BatchLimit)

	movies := etl.NewMoviePipeline(
		filmWorkProducer, genreProducerForMovies, personProducerForMovies,
		genreEnricher, personEnricher,
		reader, movieLoader, store, clock, cfg.ETLSyncDelay, log,
	)

	genreProducer := etl.NewProducer(constants.StreamKey(constants.PipelineGenres, constants.TableGenre), cfg.ETLDefaultDate, cfg.BatchLimit, reader.StreamGenreChanges, store, log)
	genres := etl.NewGenrePipeline(genreProducer, reader, genreLoader, store, clock, cfg.ETLSyncDelay, log)

	personProducer := etl.NewProducer(constants.StreamKey(constants.PipelinePersons, constants.TablePerson), cfg.ETLDefaultDate, cfg.BatchLimit, reader.StreamPersonChanges, store, log)
	persons := etl.NewPersonPipeline(personProducer, reader, personLoader, store, clock, cfg.ETLSyncDelay, log)

	return map[string]runnable{
		constants.TableFilmWork: movies,
		constants.TableGenre:    genres,
		constants.TablePerson:   persons,
	}
}

// selectPipelines returns the pipelines to run for mode. An empty mode
// runs all three, concurrently in this process.
func selectPipelines(mode string, pipelines map[string]runnable) ([]runnable, error) {
	if mode == "" {
		return []runnable{pipelines[constants.TableFilmWork], pipelines[constants.TableGenre], pipelines[constants.TablePerson]}, nil
	}

	p, ok := pipelines[mode]
	if !ok {
		return nil, fmt.Errorf("movies-etl: unknown ETL_MODE %q", mode)
	}
	return []runnable{p}, nil
}
