package catalog

// CastleIndex defines the interface for catalog operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type CastleIndex interface {
	UpsertCastle(row CastleRow, body string) error
	DeleteCastle(id string) error
	GetCastle(id string) (*CastleRow, error)
	ListCastles(limit, offset int, country, sort string) ([]CastleRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Countries() ([]CountryCount, error)
	CompletenessStats() (int, float64, error)
	AllIDs() (map[string]struct{}, error)
	Close() error
}

// Verify *DB satisfies CastleIndex at compile time.
var _ CastleIndex = (*DB)(nil)
