// Package repositories is the persistence gateway: one repository per
// entity, each over an explicitly injected *gorm.DB.
//
// Every method takes the caller's context and runs through
// db.WithContext(ctx). To take part in a caller's transaction use WithTx.
package repositories

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped) when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

// wrap adds operation context to err and folds gorm's not-found into
// ErrNotFound.
func wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
