// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to pipeline components (postgres, search sink, cursor
    store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the movies-etl worker.
type Config struct {

	// Logging
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Relational content store (PostgreSQL)
	PostgresHost     string `env:"POSTGRES_HOST,required"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB,required"`
	PostgresUser     string `env:"POSTGRES_USER,required"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,required"`

	// Search engine (Elasticsearch-compatible)
	ElasticsearchHost string `env:"ELASTICSEARCH_HOST,required"`
	ElasticsearchPort string `env:"ELASTICSEARCH_PORT" envDefault:"9200"`

	// ETLMode selects a single pipeline ("film_work", "person", "genre")
	// when this process is deployed as one of several single-pipeline
	// workers. Empty means "run all three pipelines in this process".
	ETLMode string `env:"ETL_MODE"`

	// ETLFileState is the path to the cursor store's JSON document.
	ETLFileState string `env:"ETL_FILE_STATE" envDefault:"./etl_state.json"`

	// BatchLimit bounds how many rows/ids move through a single
	// producer/enricher batch.
	BatchLimit int `env:"BATCH_LIMIT" envDefault:"100"`

	// BulkChunkSize bounds how many documents a single bulk request to the
	// search engine may contain.
	BulkChunkSize int `env:"BULK_CHUNK_SIZE" envDefault:"500"`

	// ETLSyncDelay is the pause between pipeline ticks.
	ETLSyncDelay time.Duration `env:"ETL_SYNC_DELAY" envDefault:"1s"`

	// ETLDefaultDate is the cursor value used when a stream has never run.
	ETLDefaultDate string `env:"ETL_DEFAULT_DATE" envDefault:"1700-01-01T00:00:00Z"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// PostgresDSN builds a libpq-compatible connection string from the
// discrete Postgres fields. Kept as a single derived accessor (rather than
// a raw DATABASE_URL) so the individual fields named in the external
// interface stay independently overridable.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB,
	)
}

// ElasticsearchURL builds the base URL for the search engine HTTP API.
func (c *Config) ElasticsearchURL() string {
	return fmt.Sprintf("http://%s:%s", c.ElasticsearchHost, c.ElasticsearchPort)
}
