package entity

import "time"

// Property is a listed property row.
type Property struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Address     string    `db:"address" json:"address"`
	Price       int64     `db:"price" json:"price"`
	Image       string    `db:"image" json:"image"`
	CategoryID  string    `db:"category_id" json:"categoryId"`
	OfficeID    string    `db:"office_id" json:"officeId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
