package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a recipient managed by a single shop owner. The phone number is
// unique per owner, not globally; two different users may both know
// "+12025550000".
type Customer struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_customers_user_created,priority:1;uniqueIndex:idx_customers_user_phone,priority:1"`
	Name    string    `json:"name" gorm:"not null"`
	Phone   string    `json:"phone" gorm:"not null;uniqueIndex:idx_customers_user_phone,priority:2"`
	Address string    `json:"address" gorm:"not null"`
	Email   *string   `json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_customers_user_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// OwnerID reports the owning user of the record.
func (c *Customer) OwnerID() uuid.UUID { return c.UserID }
