package entity

import "time"

// Account is a row in the accounts table. PasswordHash is always the
// credential-hasher output over (Salt, SaltSplit, plaintext); SaltSplit
// is generated once at creation and never recomputed. The three secret
// fields are stripped before an account leaves the system boundary.
//
// Accounts provisioned on first login have empty password material.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Salt         string    `db:"salt" json:"-"`
	SaltSplit    int       `db:"salt_split" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// PublicAccount is the projection safe to return to callers.
type PublicAccount struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Account) Public() *PublicAccount {
	return &PublicAccount{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt}
}
