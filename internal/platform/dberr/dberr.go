// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level pgx/pgconn errors and
// the pipeline's [apperr] error taxonomy.
package dberr

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

// Postgres SQLSTATE classes that are fatal for the process: syntax
// errors and undefined columns/tables/functions are programmer errors,
// never caused by transient conditions.
//
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateSyntaxError       = "42601"
	sqlStateUndefinedColumn   = "42703"
	sqlStateUndefinedTable    = "42P01"
	sqlStateUndefinedFunction = "42883"
)

// Classify inspects a database error raised at stage and wraps it into the
// pipeline's [apperr.PipelineError] taxonomy:
//
//   - connection resets, timeouts, refused connections -> Transient
//   - SQL syntax / unknown column / unknown table -> Fatal
//   - anything else -> Fatal (unrecognised errors default to the safer,
//     more conservative classification rather than retrying forever)
func Classify(stage string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSyntaxError, sqlStateUndefinedColumn, sqlStateUndefinedTable, sqlStateUndefinedFunction:
			return apperr.FatalErr(stage, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperr.TransientErr(stage, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperr.TransientErr(stage, err)
	}

	// Unrecognised database error: treat as fatal rather than retrying an
	// error we cannot positively identify as transient.
	return apperr.FatalErr(stage, err)
}
