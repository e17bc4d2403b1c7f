// Package services holds the use cases that span more than one statement:
// reads-modify-writes, deletes guarded by references and order placement.
// Each runs in a single transaction on the injected *gorm.DB.
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCustomerHasOrders blocks deleting a customer that still owns orders.
	ErrCustomerHasOrders = errors.New("customer has existing orders")
	// ErrProductInUse blocks deleting a product that an order links to.
	ErrProductInUse = errors.New("product is referenced by existing orders")
)

// FieldErrors reports request fields that point at rows which do not exist.
// It has the same shape as a validation failure.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "invalid references: " + strings.Join(parts, "; ")
}
