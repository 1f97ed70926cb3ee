package ports

import "errors"

// ErrTripNotFound is returned by TripRepository lookups for unknown IDs.
var ErrTripNotFound = errors.New("trip not found")
