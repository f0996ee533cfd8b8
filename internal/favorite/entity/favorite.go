package entity

import "time"

// Favorite is a (user, property) relation row. The pair is required
// unique across all rows; the table's compound unique index enforces
// that, not application code.
type Favorite struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	PropertyID string    `db:"property_id" json:"propertyId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
