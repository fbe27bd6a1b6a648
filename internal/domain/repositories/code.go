package repositories

import (
	"context"
)

// CodeAllocator hands out the next human-readable record code. Next must be an
// atomic increment against the persisted counter so that two concurrent
// creations can never observe the same value; callers run it inside the same
// transaction as the insert that consumes the code.
type CodeAllocator interface {
	Next(ctx context.Context) (string, error)
}
