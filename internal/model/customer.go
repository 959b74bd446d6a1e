package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is created automatically on a customer's first order and linked
// to every subsequent order placed with the same email.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"fullName" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewsletterSubscriber is a standalone mailing-list entry; subscribing an
// already-subscribed email is a no-op.
type NewsletterSubscriber struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
