// AngelaMos | 2026
// errors.go

package customer

import (
	"fmt"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

var (
	ErrInvalidPurchaseAmount = fmt.Errorf("invalid purchase amount: %w", core.ErrInvalidInput)
	ErrInvalidEmail          = fmt.Errorf("invalid email address: %w", core.ErrInvalidInput)
	ErrEmailAlreadyPresent   = fmt.Errorf("customer already has an email address: %w", core.ErrPreconditionFailed)
)
