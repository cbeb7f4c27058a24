package note

import "errors"

var (
	// ErrInvalidInput is returned when a caller hands blank content, an unknown
	// category or an importance outside [1,5]. Nothing is stored.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistenceCorrupt reports that the persisted collection could not be
	// used. The store has been reset to an empty collection and remains usable.
	ErrPersistenceCorrupt = errors.New("persisted notes corrupt")
)
