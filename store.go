package presence

import "github.com/jpalmerr/presence/internal/store"

// Store is the key-value storage the endpoint keeps its secret and status in.
//
// Implementations must provide atomic single-key get/set and be safe for
// concurrent use. Use [NewMemoryStore] or [OpenSQLiteStore].
type Store = store.Store

// NewMemoryStore returns a [Store] that keeps records in process memory.
func NewMemoryStore() Store {
	return store.NewMemoryStore()
}

// OpenSQLiteStore opens a durable [Store] at path, creating the file and its
// parent directory if needed.
func OpenSQLiteStore(path string) (Store, error) {
	st, err := store.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return st, nil
}
