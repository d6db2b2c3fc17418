package domain

import (
	"time"

	"github.com/google/uuid"
)

// User models a shop owner account. Every customer and shipment row is owned
// by exactly one user; there is no sharing between accounts.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID satisfies the Owned interface; a user owns itself.
func (u *User) OwnerID() uuid.UUID { return u.ID }
