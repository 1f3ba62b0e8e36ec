// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package searchsink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBulkBody_OneActionLinePerDocument(t *testing.T) {
	docs := []Doc{
		{ID: "m1", Source: json.RawMessage(`{"title":"Alpha"}`)},
		{ID: "m2", Source: json.RawMessage(`{"title":"Beta"}`)},
	}

	body, err := buildBulkBody("movies", docs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 4)

	var action bulkAction
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &action))
	assert.Equal(t, "movies", action.Index.Index)
	assert.Equal(t, "m1", action.Index.ID)
	assert.JSONEq(t, `{"title":"Alpha"}`, lines[1])

	require.NoError(t, json.Unmarshal([]byte(lines[2]), &action))
	assert.Equal(t, "m2", action.Index.ID)
	assert.JSONEq(t, `{"title":"Beta"}`, lines[3])
}

func TestBuildBulkBody_EmptyChunkProducesEmptyBody(t *testing.T) {
	body, err := buildBulkBody("movies", nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestRejectedItems_SkipsSuccessfulEntries(t *testing.T) {
	resp := bulkResponse{Errors: true}
	resp.Items = make([]struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	}, 2)
	resp.Items[0].Index.ID = "m1"
	resp.Items[0].Index.Status = 201
	resp.Items[1].Index.ID = "m2"
	resp.Items[1].Index.Status = 400
	resp.Items[1].Index.Error.Type = "mapper_parsing_exception"
	resp.Items[1].Index.Error.Reason = "failed to parse field [rating]"

	got := rejectedItems(resp)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
	assert.Equal(t, 400, got[0].Status)
	assert.Equal(t, "mapper_parsing_exception", got[0].Type)
	assert.Equal(t, "failed to parse field [rating]", got[0].Reason)
}

func TestRejectedItems_NoFailingItemsReturnsEmpty(t *testing.T) {
	assert.Empty(t, rejectedItems(bulkResponse{}))
}

func TestBulkUpsert_ChunksAtConfiguredSize(t *testing.T) {
	c := &Client{chunkSize: 2}
	docs := []Doc{
		{ID: "1", Source: json.RawMessage(`{}`)},
		{ID: "2", Source: json.RawMessage(`{}`)},
		{ID: "3", Source: json.RawMessage(`{}`)},
	}

	var gotChunkSizes []int
	for _, chunk := range chunkDocs(docs, c.chunkSize) {
		gotChunkSizes = append(gotChunkSizes, len(chunk))
	}

	assert.Equal(t, []int{2, 1}, gotChunkSizes)
}
