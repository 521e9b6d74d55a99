package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a version-guarded update matched no
// rows: the trade was concurrently modified and the caller's copy is stale.
var ErrVersionConflict = errors.New("trade was modified concurrently")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a Repository bound to the given transaction handle
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Transaction runs fn inside a database transaction; fn receives a
// Repository bound to it. Any error rolls the whole unit back.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
