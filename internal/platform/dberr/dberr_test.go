// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
	"github.com/taibuivan/movies-etl/internal/platform/dberr"
)

func TestClassify_SyntaxErrorIsFatal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601", Message: "syntax error"}

	err := dberr.Classify("producer:film_work", pgErr)

	assert.True(t, apperr.IsFatal(err))
}

func TestClassify_UndefinedColumnIsFatal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42703", Message: "column does not exist"}

	err := dberr.Classify("merger:movies", pgErr)

	assert.True(t, apperr.IsFatal(err))
}

func TestClassify_NetworkErrorIsTransient(t *testing.T) {
	netErr := &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}

	err := dberr.Classify("producer:person", netErr)

	assert.True(t, apperr.IsTransient(err))
}

func TestClassify_UnrecognisedErrorIsFatal(t *testing.T) {
	err := dberr.Classify("producer:genre", errors.New("something unexpected"))

	assert.True(t, apperr.IsFatal(err))
}

func TestClassify_NilIsNil(t *testing.T) {
	assert.Nil(t, dberr.Classify("producer:genre", nil))
}
