package history

// Ensure NopStore implements Store.
var _ Store = (*NopStore)(nil)

// NopStore discards run records. Used when history is disabled.
type NopStore struct{}

func (NopStore) Record(Run) error          { return nil }
func (NopStore) Recent(int) ([]Run, error) { return nil, nil }
func (NopStore) Close() error              { return nil }
