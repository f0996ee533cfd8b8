package entity

import "time"

// Message is a chat message attached to an (office, property) pair.
// Ids are snowflake strings so messages sort by creation time.
type Message struct {
	ID         string    `db:"id" json:"id"`
	OfficeID   string    `db:"office_id" json:"officeId"`
	PropertyID string    `db:"property_id" json:"propertyId"`
	SenderID   string    `db:"sender_id" json:"senderId"`
	Body       string    `db:"body" json:"body"`
	Read       bool      `db:"read" json:"read"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
