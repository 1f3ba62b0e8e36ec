// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package searchsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

// Doc is one document to upsert, already marshalled by the Transformer.
type Doc struct {
	ID     string
	Source json.RawMessage
}

// bulkAction is the ndjson action-and-metadata line preceding each
// document's source line in a _bulk request body.
type bulkAction struct {
	Index bulkActionMeta `json:"index"`
}

type bulkActionMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

// BulkUpsert indexes docs into index using the search engine's bulk API,
// chunked at c.chunkSize documents per request. Every request is retried
// under the package's backoff policy; a 4xx/5xx HTTP response for the
// whole request is fatal/transient respectively, but a per-item
// rejection inside an otherwise-200 response (malformed mapping or
// payload for that one document) is logged, not fatal for the rest of
// the chunk.
func (c *Client) BulkUpsert(ctx context.Context, index string, docs []Doc) error {
	for _, chunk := range chunkDocs(docs, c.chunkSize) {
		if err := withRetry(ctx, func() error {
			return c.bulkChunk(ctx, index, chunk)
		}); err != nil {
			return err
		}
	}
	return nil
}

// chunkDocs splits docs into consecutive chunks of at most size documents.
func chunkDocs(docs []Doc, size int) [][]Doc {
	var chunks [][]Doc
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		chunks = append(chunks, docs[start:end])
	}
	return chunks
}

// buildBulkBody renders chunk as newline-delimited JSON: one action line
// followed by one source line per document, per the search engine's bulk
// wire format.
func buildBulkBody(index string, chunk []Doc) ([]byte, error) {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, doc := range chunk {
		action := bulkAction{Index: bulkActionMeta{Index: index, ID: doc.ID}}
		if err := enc.Encode(action); err != nil {
			return nil, apperr.FatalErr("sink:bulk_encode", fmt.Errorf("searchsink: encode bulk action: %w", err))
		}
		if _, err := body.Write(doc.Source); err != nil {
			return nil, apperr.FatalErr("sink:bulk_encode", fmt.Errorf("searchsink: write bulk source: %w", err))
		}
		body.WriteByte('\n')
	}
	return body.Bytes(), nil
}

func (c *Client) bulkChunk(ctx context.Context, index string, chunk []Doc) error {
	body, err := buildBulkBody(index, chunk)
	if err != nil {
		return err
	}

	res, err := c.es.Bulk(bytes.NewReader(body), c.es.Bulk.WithContext(ctx), c.es.Bulk.WithIndex(index))
	if err != nil {
		return apperr.TransientErr("sink:bulk", fmt.Errorf("searchsink: bulk request: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		return apperr.TransientErr("sink:bulk", fmt.Errorf("searchsink: bulk %s: status %s", index, res.Status()))
	}
	if res.IsError() {
		return apperr.FatalErr("sink:bulk", fmt.Errorf("searchsink: bulk %s: status %s", index, res.Status()))
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return apperr.TransientErr("sink:bulk", fmt.Errorf("searchsink: decode bulk response: %w", err))
	}
	if parsed.Errors {
		// A per-item rejection inside an otherwise-200 response is logged,
		// not fatal for the whole chunk — the other documents
		// in the chunk were still indexed successfully.
		for _, item := range rejectedItems(parsed) {
			c.logger.Warn("bulk_item_rejected",
				slog.String("index", index),
				slog.String("id", item.ID),
				slog.Int("status", item.Status),
				slog.String("error_type", item.Type),
				slog.String("error_reason", item.Reason),
			)
		}
	}

	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// rejectedItem is one document's bulk-index rejection.
type rejectedItem struct {
	ID     string
	Status int
	Type   string
	Reason string
}

// rejectedItems returns the per-item failures in r — entries with a
// status below 300 indexed successfully and are not included.
func rejectedItems(r bulkResponse) []rejectedItem {
	var out []rejectedItem
	for _, item := range r.Items {
		if item.Index.Status < 300 {
			continue
		}
		out = append(out, rejectedItem{
			ID:     item.Index.ID,
			Status: item.Index.Status,
			Type:   item.Index.Error.Type,
			Reason: item.Index.Error.Reason,
		})
	}
	return out
}

func newReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
