// AngelaMos | 2026
// dto.go

package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z"
	maxBodyBytes    = 1 << 20

	MessagePurchaseRecorded = "Purchase recorded successfully"
	MessageEmailUpdated     = "Email updated successfully"
)

// PurchaseRequest carries the purchase body. Amount stays nil when it is
// missing or not a number.
type PurchaseRequest struct {
	Amount        *float64 `json:"amount"                  validate:"required,gt=0"`
	StoreLocation *string  `json:"storeLocation,omitempty"`
}

// PreferencesPatch holds the fields present in a preferences body with the
// right JSON type; anything else is dropped.
type PreferencesPatch struct {
	Notifications  *bool   `json:"notifications,omitempty"`
	PreferredStore *string `json:"preferredStore,omitempty"`
	Email          *string `json:"email,omitempty"`
}

type EmailBackfillRequest struct {
	Email *string `json:"email" validate:"required,legacy_email"`
}

func (p *PurchaseRequest) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	p.Amount = field[float64](obj, "amount")
	p.StoreLocation = field[string](obj, "storeLocation")
	return nil
}

func (p *PreferencesPatch) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	p.Notifications = field[bool](obj, "notifications")
	p.PreferredStore = field[string](obj, "preferredStore")
	p.Email = field[string](obj, "email")
	return nil
}

func (e *EmailBackfillRequest) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	e.Email = field[string](obj, "email")
	return nil
}

// DecodeBody reads a JSON object body into dst. An empty body decodes as
// an empty object; anything that is not a JSON object is an error.
func DecodeBody(body io.Reader, dst json.Unmarshaler) error {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxBodyBytes {
		return fmt.Errorf("body exceeds %d bytes", maxBodyBytes)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}

	return dst.UnmarshalJSON(data)
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return obj, nil
}

// field returns obj[key] decoded as T, or nil when the key is absent, null
// or of another JSON type.
func field[T any](obj map[string]json.RawMessage, key string) *T {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

type CustomerResponse struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Status           Status  `json:"status"`
	Points           int     `json:"points"`
	LastPurchaseDate *string `json:"lastPurchaseDate"`
	Email            *string `json:"email"`
	PreferredStore   *string `json:"preferredStore"`
	JoinDate         string  `json:"joinDate"`
	Notifications    bool    `json:"notifications"`
	LastStatusChange *string `json:"lastStatusChange"`
}

type PurchaseResponse struct {
	Message       string           `json:"message"`
	Customer      CustomerResponse `json:"customer"`
	StoreLocation *string          `json:"storeLocation,omitempty"`
	PointsEarned  int              `json:"pointsEarned"`
	BonusApplied  int              `json:"bonusApplied"`
}

type EmailUpdateResponse struct {
	Message  string           `json:"message"`
	Customer CustomerResponse `json:"customer"`
}

// FormatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func ToCustomerResponse(c *Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Status:           c.Status,
		Points:           c.Points,
		LastPurchaseDate: optionalTimestamp(c.LastPurchaseDate),
		Email:            optionalString(c.Email),
		PreferredStore:   optionalString(c.PreferredStore),
		JoinDate:         FormatTimestamp(c.JoinDate),
		Notifications:    c.Notifications,
		LastStatusChange: optionalTimestamp(c.LastStatusChange),
	}
}

func ToPurchaseResponse(res PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		Message:       MessagePurchaseRecorded,
		Customer:      ToCustomerResponse(res.Customer),
		StoreLocation: optionalString(res.StoreLocation),
		PointsEarned:  res.PointsEarned,
		BonusApplied:  res.BonusApplied,
	}
}

func optionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
