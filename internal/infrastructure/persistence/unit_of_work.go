package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/kerp/backend/internal/application/behavior"
)

// ErrTransactionFinished is returned when a transaction is committed or rolled back twice
var ErrTransactionFinished = errors.New("transaction already finished")

type txContextKey struct{}

// DBFromContext returns the transaction carried by ctx, or db when there is none.
// Repositories call it so that they take part in the request's unit of work.
func DBFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// GormUnitOfWork begins GORM transactions and stores them in the request context
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Begin starts a transaction. The returned context carries it for DBFromContext.
func (u *GormUnitOfWork) Begin(ctx context.Context) (context.Context, behavior.Transaction, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ctx, nil, fmt.Errorf("begin: %w", tx.Error)
	}
	return context.WithValue(ctx, txContextKey{}, tx), &gormTransaction{tx: tx}, nil
}

// gormTransaction finishes at most once; Release rolls back an unfinished transaction
type gormTransaction struct {
	mu       sync.Mutex
	tx       *gorm.DB
	finished bool
}

func (t *gormTransaction) Commit(context.Context) error {
	return t.finish(func(tx *gorm.DB) error { return tx.Commit().Error })
}

func (t *gormTransaction) Rollback(context.Context) error {
	return t.finish(func(tx *gorm.DB) error { return tx.Rollback().Error })
}

func (t *gormTransaction) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}
	t.finished = true
	t.tx.Rollback()
}

func (t *gormTransaction) finish(fn func(*gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return ErrTransactionFinished
	}
	t.finished = true
	return fn(t.tx)
}

var _ behavior.UnitOfWork = (*GormUnitOfWork)(nil)
