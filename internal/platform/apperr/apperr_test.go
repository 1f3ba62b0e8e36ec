// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

func TestTransientErr_Classification(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.TransientErr("source_reader:film_work", cause)

	assert.True(t, apperr.IsTransient(err))
	assert.False(t, apperr.IsFatal(err))
	assert.ErrorIs(t, err, cause)
}

func TestFatalErr_Classification(t *testing.T) {
	cause := errors.New("400 bad request")
	err := apperr.FatalErr("sink:ensure_index", cause)

	assert.True(t, apperr.IsFatal(err))
	assert.False(t, apperr.IsTransient(err))
}

func TestSkipErr_IsNeitherTransientNorFatal(t *testing.T) {
	err := apperr.SkipErr("transformer:movies", errors.New("null id"))

	assert.False(t, apperr.IsTransient(err))
	assert.False(t, apperr.IsFatal(err))
	assert.Equal(t, apperr.Skip, apperr.As(err).Severity)
}

func TestAs_WrappedError(t *testing.T) {
	cause := apperr.TransientErr("sink:bulk_upsert", errors.New("503"))
	wrapped := fmt.Errorf("loader failed: %w", cause)

	pe := apperr.As(wrapped)
	if assert.NotNil(t, pe) {
		assert.Equal(t, apperr.Transient, pe.Severity)
	}
}

func TestAs_PlainError_ReturnsNil(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("plain")))
}
