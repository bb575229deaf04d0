// AngelaMos | 2026
// entity.go

package customer

import (
	"time"
)

type Status string

const (
	StatusGold   Status = "GOLD"
	StatusSilver Status = "SILVER"
	StatusBronze Status = "BRONZE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusGold, StatusSilver, StatusBronze:
		return true
	}
	return false
}

// Customer is the sole loyalty entity. Email and PreferredStore use the
// empty string for "not set".
type Customer struct {
	ID               int        `db:"id"`
	Name             string     `db:"name"`
	Status           Status     `db:"status"`
	Points           int        `db:"points"`
	LastPurchaseDate *time.Time `db:"last_purchase_date"`
	Email            string     `db:"email"`
	PreferredStore   string     `db:"preferred_store"`
	JoinDate         time.Time  `db:"join_date"`
	Notifications    bool       `db:"notifications"`
	LastStatusChange *time.Time `db:"last_status_change"`
}

func (c *Customer) HasEmail() bool {
	return c.Email != ""
}

// Clone returns a deep copy so stored records never alias caller memory.
func (c *Customer) Clone() *Customer {
	out := *c
	if c.LastPurchaseDate != nil {
		t := *c.LastPurchaseDate
		out.LastPurchaseDate = &t
	}
	if c.LastStatusChange != nil {
		t := *c.LastStatusChange
		out.LastStatusChange = &t
	}
	return &out
}
