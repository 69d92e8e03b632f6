package domain

import "time"

// Buyer is an authenticated purchasing account. All orders and products are
// scoped to the owning buyer.
type Buyer struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	CompanyName  string
	CreatedAt    time.Time
}
