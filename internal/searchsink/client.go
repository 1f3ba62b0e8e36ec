// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package searchsink implements the Sink Writer stage: a client for the
search engine's HTTP index API, bulk-upsert framing, and the idempotent
index bootstrap the Loader relies on at startup.

Uses the "construct client, ping, fail fast" startup shape, and
github.com/elastic/go-elasticsearch/v8 for the transport itself. Bulk
requests that fail transiently are retried under a
github.com/cenkalti/backoff/v4 exponential policy (see withRetry). The
Source Reader does not retry; its transient errors are returned to the
caller.
*/
package searchsink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
	"github.com/taibuivan/movies-etl/internal/platform/constants"
)

// Client wraps the search engine's HTTP API with the bulk-upsert and
// index-bootstrap operations the Loader needs.
type Client struct {
	es        *elasticsearch.Client
	logger    *slog.Logger
	chunkSize int
}

// NewClient constructs a Client against addr (e.g.
// "http://localhost:9200") and verifies connectivity with a single
// Ping — a misconfigured sink should fail the process at startup, not
// on the first tick.
func NewClient(ctx context.Context, addr string, chunkSize int, logger *slog.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{addr}})
	if err != nil {
		return nil, apperr.FatalErr("sink:new_client", fmt.Errorf("searchsink: construct client: %w", err))
	}

	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, apperr.TransientErr("sink:ping", fmt.Errorf("searchsink: ping %s: %w", addr, err))
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, apperr.FatalErr("sink:ping", fmt.Errorf("searchsink: ping %s: status %s", addr, res.Status()))
	}

	if chunkSize <= 0 {
		chunkSize = constants.DefaultBulkChunkSize
	}

	logger.Info("searchsink_connected", slog.String("addr", addr))
	return &Client{es: es, logger: logger, chunkSize: chunkSize}, nil
}

// EnsureIndex creates index with mapping if it does not already exist.
// Idempotent: an existing index is left untouched, even if its mapping
// differs from the one passed in — bootstrap never drops or remaps an
// existing index.
func (c *Client) EnsureIndex(ctx context.Context, index string, mapping []byte) error {
	existsRes, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperr.TransientErr("sink:ensure_index", fmt.Errorf("searchsink: check index %s: %w", index, err))
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode == 200 {
		c.logger.Debug("index_already_exists", slog.String("index", index))
		return nil
	}
	if existsRes.StatusCode != 404 {
		return apperr.FatalErr("sink:ensure_index", fmt.Errorf("searchsink: check index %s: status %s", index, existsRes.Status()))
	}

	createRes, err := c.es.Indices.Create(
		index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(newReader(mapping)),
	)
	if err != nil {
		return apperr.TransientErr("sink:ensure_index", fmt.Errorf("searchsink: create index %s: %w", index, err))
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		detail := createRes.String()
		if strings.Contains(detail, "resource_already_exists_exception") {
			c.logger.Debug("index_already_exists", slog.String("index", index))
			return nil
		}
		return apperr.FatalErr("sink:ensure_index", fmt.Errorf("searchsink: create index %s: %s", index, detail))
	}

	c.logger.Info("index_created", slog.String("index", index))
	return nil
}

// withRetry runs op under the package's standard backoff policy,
// treating a [apperr.PipelineError] with Fatal severity as
// backoff.Permanent so it aborts the tick immediately instead of
// retrying.
func withRetry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = constants.BackoffInitialInterval
	policy.Multiplier = constants.BackoffMultiplier
	policy.MaxInterval = constants.BackoffMaxInterval
	policy.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if apperr.IsFatal(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(policy, ctx))
}
