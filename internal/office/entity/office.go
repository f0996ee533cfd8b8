package entity

import "time"

// Office is an estate-office row. Image is nullable: offices created
// without an upload keep a NULL image, matching the public JSON shape
// clients expect.
type Office struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Image     *string   `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
