// Package store is the gorm-backed access layer for the Spot Feed
// schema. Storage constraint violations are translated into domain
// error kinds here; callers never see raw driver errors.
package store

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// WithTx runs fn inside a single transaction. All multi-row invariants
// (joint + creator membership, OTP consume + user verify) go through here.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}
