// AngelaMos | 2026
// seed.go

package customer

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

// SeedFile is the YAML layout accepted by LoadSeedFile.
type SeedFile struct {
	Customers []SeedCustomer `yaml:"customers" validate:"dive"`
}

type SeedCustomer struct {
	ID               int        `yaml:"id"                 validate:"required,gt=0"`
	Name             string     `yaml:"name"               validate:"required,max=200"`
	Status           string     `yaml:"status"             validate:"required,oneof=GOLD SILVER BRONZE"`
	Points           int        `yaml:"points"             validate:"gte=0"`
	Email            string     `yaml:"email"              validate:"omitempty,max=255"`
	PreferredStore   string     `yaml:"preferred_store"    validate:"omitempty,max=200"`
	Notifications    bool       `yaml:"notifications"`
	JoinDate         time.Time  `yaml:"join_date"          validate:"required"`
	LastPurchaseDate *time.Time `yaml:"last_purchase_date"`
	LastStatusChange *time.Time `yaml:"last_status_change"`
}

func (s SeedCustomer) toCustomer() Customer {
	c := Customer{
		ID:               s.ID,
		Name:             s.Name,
		Status:           Status(s.Status),
		Points:           s.Points,
		Email:            s.Email,
		PreferredStore:   s.PreferredStore,
		Notifications:    s.Notifications,
		JoinDate:         s.JoinDate.UTC(),
		LastPurchaseDate: s.LastPurchaseDate,
		LastStatusChange: s.LastStatusChange,
	}
	return *c.Clone()
}

// LoadSeedFile parses and validates a YAML seed file.
func LoadSeedFile(path string) ([]Customer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]Customer, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(file); err != nil {
		return nil, fmt.Errorf("validate seed file: %s", core.FormatValidationError(err))
	}

	seen := make(map[int]struct{}, len(file.Customers))
	customers := make([]Customer, 0, len(file.Customers))
	for _, sc := range file.Customers {
		if _, dup := seen[sc.ID]; dup {
			return nil, fmt.Errorf("validate seed file: duplicate customer id %d", sc.ID)
		}
		seen[sc.ID] = struct{}{}
		customers = append(customers, sc.toCustomer())
	}

	return customers, nil
}

// DefaultCustomers returns the built-in fixtures loaded when no seed file
// is configured. Customer 3 has no email and is eligible for the backfill.
func DefaultCustomers() []Customer {
	lastPurchase := time.Date(2024, time.February, 20, 15, 30, 0, 0, time.UTC)

	return []Customer{
		{
			ID:               1,
			Name:             "Alice Johnson",
			Status:           StatusGold,
			Points:           820,
			LastPurchaseDate: &lastPurchase,
			Email:            "alice@example.com",
			PreferredStore:   "Downtown",
			JoinDate:         time.Date(2022, time.January, 15, 9, 0, 0, 0, time.UTC),
			Notifications:    true,
		},
		{
			ID:               2,
			Name:             "Bob Smith",
			Status:           StatusSilver,
			Points:           450,
			LastPurchaseDate: &lastPurchase,
			Email:            "bob@example.com",
			PreferredStore:   "Mall",
			JoinDate:         time.Date(2022, time.June, 3, 14, 0, 0, 0, time.UTC),
			Notifications:    false,
		},
		{
			ID:            3,
			Name:          "Carol Davis",
			Status:        StatusBronze,
			Points:        120,
			JoinDate:      time.Date(2021, time.November, 28, 11, 45, 0, 0, time.UTC),
			Notifications: true,
		},
	}
}
