package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/alfredjulianstanly/spot-feed/internal/domain"
)

// translate maps gorm errors onto domain error kinds. Requires the DB
// to be opened with TranslateError so driver constraint violations
// arrive as gorm sentinels. A foreign-key violation means a referenced
// row is absent, which callers observe as not-found.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrNotFound
	default:
		return err
	}
}
