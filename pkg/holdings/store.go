package holdings

import "context"

// Store persists holdings. Implementations must return holdings from List
// in a deterministic order so downstream layout snapshots hash stably.
type Store interface {
	// Create persists a new holding.
	Create(ctx context.Context, h Holding) error

	// Get retrieves a holding by ID.
	Get(ctx context.Context, id string) (Holding, error)

	// Update applies a partial update and returns the updated holding.
	Update(ctx context.Context, id string, u Update) (Holding, error)

	// Delete removes a holding by ID. Deleting a missing holding is an
	// error.
	Delete(ctx context.Context, id string) error

	// List returns all holdings ordered by symbol, then ID.
	List(ctx context.Context) ([]Holding, error)

	// Close releases store resources.
	Close(ctx context.Context) error
}
