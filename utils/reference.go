package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewOrderNumber builds a customer-facing reference such as ORD-9F2C41AB7D3E.
// The suffix is taken from a fresh UUID, so references created in the same
// second are still distinct.
func NewOrderNumber(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(suffix))
}
