package engine

import "github.com/google/uuid"

// newID mints identifiers for rows created inside the engine (periods, queue
// and roadmap items). Callers creating top-level entities mint their own.
func newID() string { return uuid.NewString() }
