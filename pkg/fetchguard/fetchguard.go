// Package fetchguard bounds client-side request concurrency: at most one
// in-flight fetch per canonical resource key, and debounced recomputation
// with a stale-result guard for fast retyping.
package fetchguard

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Guard deduplicates concurrent fetches for the identical resource key.
// Callers racing on the same key share one execution and one result.
type Guard struct {
	group singleflight.Group
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Do executes fn unless a fetch for key is already in flight, in which
// case it waits for and shares that fetch's result. shared reports
// whether the result was shared with other callers.
func (g *Guard) Do(key string, fn func() (interface{}, error)) (v interface{}, shared bool, err error) {
	v, err, shared = g.group.Do(key, fn)
	return v, shared, err
}

// Forget drops the in-flight record for key so the next Do issues a
// fresh fetch.
func (g *Guard) Forget(key string) {
	g.group.Forget(key)
}

// Key canonicalizes request parameters into a stable key. Parameter order
// does not affect the result.
func Key(resource string, params map[string]string) string {
	if len(params) == 0 {
		return resource
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	parts = append(parts, resource)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, params[name]))
	}
	return strings.Join(parts, "&")
}
