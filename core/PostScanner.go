package core

import "context"

// PostScanner runs a check that is not tied to a single file, after the
// file scan has finished.
type PostScanner interface {
	Name() string
	Scan(ctx context.Context) ([]Finding, error)
}
