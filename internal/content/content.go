package content

import "context"

// Package content resolves content identifiers (CIDs) into raw record text.
// Implementations never retry and never cache.

// Fetcher resolves a content identifier into text.
type Fetcher interface {
	// Fetch returns the text and true on success. Any failure, including a
	// non-success status, returns false; the reason is logged, not returned.
	Fetch(ctx context.Context, cid string) (string, bool)
}
