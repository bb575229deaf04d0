// AngelaMos | 2026
// seed_test.go

package customer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
customers:
  - id: 10
    name: Dana Lee
    status: SILVER
    points: 510
    email: dana@example.com
    preferred_store: Airport
    notifications: true
    join_date: 2023-04-01T08:00:00Z
    last_purchase_date: 2024-01-10T10:15:00Z
  - id: 11
    name: Evan Kim
    status: BRONZE
    points: 0
    join_date: 2024-02-02T00:00:00Z
`

func TestParseSeed(t *testing.T) {
	customers, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, customers, 2)

	dana := customers[0]
	assert.Equal(t, 10, dana.ID)
	assert.Equal(t, StatusSilver, dana.Status)
	assert.Equal(t, 510, dana.Points)
	assert.Equal(t, "Airport", dana.PreferredStore)
	require.NotNil(t, dana.LastPurchaseDate)
	assert.Equal(t, "2024-01-10T10:15:00.000Z", FormatTimestamp(*dana.LastPurchaseDate))
	assert.Nil(t, dana.LastStatusChange)

	evan := customers[1]
	assert.False(t, evan.HasEmail())
	assert.Nil(t, evan.LastPurchaseDate)
}

func seedEntry(fields ...string) string {
	return "  - " + strings.Join(fields, "\n    ") + "\n"
}

func TestParseSeed_Rejects(t *testing.T) {
	const joined = "join_date: 2024-01-01T00:00:00Z"

	tests := []struct {
		name string
		yaml string
	}{
		{"bad status", seedEntry("id: 1", "name: A", "status: PLATINUM", joined)},
		{"negative points", seedEntry("id: 1", "name: A", "status: GOLD", "points: -1", joined)},
		{"missing id", seedEntry("name: A", "status: GOLD", joined)},
		{"missing join date", seedEntry("id: 1", "name: A", "status: GOLD")},
		{
			"duplicate id",
			seedEntry("id: 1", "name: A", "status: GOLD", joined) +
				seedEntry("id: 1", "name: B", "status: GOLD", joined),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte("customers:\n" + tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := ParseSeed([]byte("customers: [\n"))
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	customers, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultCustomers(t *testing.T) {
	customers := DefaultCustomers()
	require.Len(t, customers, 3)

	assert.True(t, customers[0].HasEmail())
	assert.True(t, customers[1].HasEmail())
	assert.False(t, customers[2].HasEmail())
	for _, c := range customers {
		assert.True(t, c.Status.Valid(), c.Name)
	}
}

func TestShippedSeedFile(t *testing.T) {
	customers, err := LoadSeedFile(filepath.Join("..", "..", "seeds", "customers.yaml"))
	require.NoError(t, err)

	defaults := DefaultCustomers()
	require.Len(t, customers, len(defaults))
	for i, want := range defaults {
		got := customers[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.Points, got.Points)
		assert.Equal(t, want.Email, got.Email)
		assert.True(t, want.JoinDate.Equal(got.JoinDate), want.Name)
	}
}
