package testutil

// ConstantRunID returns the same run id every time.
//
// Persisting under a constant run id makes repeated invocations collide on
// the sync log's (id, run_id) key, which is how tests observe idempotent
// writes.
//
// Thread-safety: ConstantRunID is stateless and safe for concurrent use.
type ConstantRunID struct {
	id string
}

// NewConstantRunID creates a generator for id.
//
// If id is empty, Generate() returns "test-run-default".
func NewConstantRunID(id string) *ConstantRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &ConstantRunID{id: id}
}

// Generate returns the fixed run id.
func (g *ConstantRunID) Generate() string {
	return g.id
}
