// Package store provides the two interchangeable persistence backends for
// PR records: a JSON array blob on local disk and a remote HTTP endpoint
// speaking the sheet protocol. Exactly one backend is active at a time,
// chosen from configuration at startup; the remote backend carries the
// local one as its fallback mirror.
package store

import "prtrack/internal/pr"

var (
	_ pr.Store = (*Local)(nil)
	_ pr.Store = (*Remote)(nil)
)
