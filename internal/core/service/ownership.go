package service

import (
	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// Owned is implemented by every record that carries an owning user id.
type Owned interface {
	OwnerID() uuid.UUID
}

// assertOwned is the single tenant-isolation gate. Every single-record read,
// update and delete goes through it after the fetch. It returns
// domain.ErrNotFound rather than a dedicated "forbidden" error so that
// not-owned and absent are indistinguishable to the caller.
func assertOwned(rec Owned, userID uuid.UUID) error {
	if rec == nil || rec.OwnerID() != userID {
		return domain.ErrNotFound
	}
	return nil
}
