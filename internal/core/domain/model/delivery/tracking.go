package delivery

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"marketplace/internal/pkg/errs"
)

// trackingCodePattern matches codes like PKD-20250310-483920.
var trackingCodePattern = regexp.MustCompile(`^PKD-\d{8}-\d{6}$`)

// NewTrackingCode generates a buyer-facing tracking code embedding the
// creation date. Uniqueness is enforced by the storage layer, not here.
func NewTrackingCode(now time.Time) string {
	return fmt.Sprintf("PKD-%s-%06d", now.UTC().Format("20060102"), rand.IntN(1000000))
}

// ValidateTrackingCode checks the code shape without consulting storage.
func ValidateTrackingCode(code string) error {
	if !trackingCodePattern.MatchString(code) {
		return errs.NewValueIsInvalidError("tracking code")
	}
	return nil
}
