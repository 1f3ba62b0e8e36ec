// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Design notes:

Deletion is never replicated: the content store is assumed append/update
only. If rows are ever deleted upstream, the corresponding search engine
documents become stale and are not cleaned up by this package — an
explicitly unresolved open question, not silently patched over here.

The default epoch ("1700-01-01T00:00:00Z", ETLDefaultDate) round-trips
through the SQL predicate as an opaque string; nothing in this package
parses or reformats a cursor value.
*/
package etl
