// AngelaMos | 2026
// rules_test.go

package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"first.last@example.co",
		"user_name-1@mail.example.museum",
		"UPPER@EXAMPLE.ORG",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing.at.example.com",
		"a@b.c",
		"a@b.toolongtld",
		"a b@example.com",
		"a@@example.com",
		"a@example",
		"a+tag@example.com",
		"a@example.c0m",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestUpdatePreferences_AppliesPresentFields(t *testing.T) {
	c := &Customer{ID: 1, Email: "old@example.com", PreferredStore: "Mall"}

	UpdatePreferences(c, PreferencesPatch{
		Notifications:  boolPtr(true),
		PreferredStore: strPtr("Downtown"),
	})

	assert.True(t, c.Notifications)
	assert.Equal(t, "Downtown", c.PreferredStore)
	assert.Equal(t, "old@example.com", c.Email)
}

func TestUpdatePreferences_EmptyPatchIsNoop(t *testing.T) {
	c := &Customer{ID: 1, Status: StatusGold, Points: 800, Notifications: true}
	before := *c

	UpdatePreferences(c, PreferencesPatch{})

	assert.Equal(t, before, *c)
}

func TestUpdatePreferences_AcceptsMalformedEmail(t *testing.T) {
	c := &Customer{ID: 1, Email: "old@example.com"}

	UpdatePreferences(c, PreferencesPatch{Email: strPtr("not-an-email")})

	assert.Equal(t, "not-an-email", c.Email)
}

func TestUpdatePreferences_DoesNotTouchStatus(t *testing.T) {
	c := &Customer{ID: 1, Status: StatusBronze, Points: 900}

	UpdatePreferences(c, PreferencesPatch{Notifications: boolPtr(false)})

	assert.Equal(t, StatusBronze, c.Status)
	assert.Nil(t, c.LastStatusChange)
}

func TestBackfillEmail(t *testing.T) {
	c := &Customer{ID: 3}

	got, err := BackfillEmail(c, strPtr("a@b.com"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)

	_, err = BackfillEmail(c, strPtr("other@example.com"))
	require.ErrorIs(t, err, ErrEmailAlreadyPresent)
	assert.Equal(t, "a@b.com", c.Email)
}

func TestBackfillEmail_AlreadyPresentBeatsInvalidPayload(t *testing.T) {
	c := &Customer{ID: 1, Email: "alice@example.com"}

	_, err := BackfillEmail(c, nil)
	require.ErrorIs(t, err, ErrEmailAlreadyPresent)

	_, err = BackfillEmail(c, strPtr("not-an-email"))
	require.ErrorIs(t, err, ErrEmailAlreadyPresent)
}

func TestBackfillEmail_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		email *string
	}{
		{"missing", nil},
		{"empty", strPtr("")},
		{"no at sign", strPtr("not-an-email")},
		{"one letter tld", strPtr("a@b.c")},
		{"no domain dot", strPtr("a@localhost")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Customer{ID: 3}

			_, err := BackfillEmail(c, tt.email)

			require.ErrorIs(t, err, ErrInvalidEmail)
			assert.Empty(t, c.Email)
		})
	}
}

func TestValidator_LegacyEmailTag(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(EmailBackfillRequest{Email: strPtr("a@b.com")}))
	assert.Error(t, v.Struct(EmailBackfillRequest{Email: strPtr("a@b.c")}))
	assert.Error(t, v.Struct(EmailBackfillRequest{}))
}
