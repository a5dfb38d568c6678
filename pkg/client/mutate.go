package client

import "context"

// MutateAndInvalidate sends a mutation and, only when the server accepted
// it, invalidates the given cache key prefixes. Invalidating a collection
// prefix also covers the detail keys beneath it, so after e.g. suspending
// customer 42 a single "customers" prefix refreshes both the listing and
// "customers/42".
func MutateAndInvalidate(ctx context.Context, c *Client, cache *QueryCache, method, path string, body any, prefixes ...string) (MutationResult, error) {
	res, err := c.Mutate(ctx, method, path, body)
	if err != nil {
		return MutationResult{}, err
	}
	for _, p := range prefixes {
		cache.Invalidate(p)
	}
	return res, nil
}
