package registry

import (
	"context"
	"errors"
)

// ErrNotFound signals that no registry row matches the RIZIV number.
// Stores return it (optionally wrapped) so the matcher can distinguish a
// miss from an infrastructure failure.
var ErrNotFound = errors.New("doctor not found")

// Store is the read-only query capability over the doctor registry.
// Search methods use substring semantics (LIKE %pattern%), mirroring how the
// registry is queried by the matching tiers.
type Store interface {
	LookupByRiziv(ctx context.Context, rizivNumber string) (*Entry, error)
	SearchByLastName(ctx context.Context, lastName string) ([]*Entry, error)
	SearchByLastNameAndCity(ctx context.Context, lastName, city string) ([]*Entry, error)
}
