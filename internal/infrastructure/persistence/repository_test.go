package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/identity"
	"github.com/kerp/backend/internal/domain/massupdate"
	"github.com/kerp/backend/internal/domain/shared"
	"github.com/kerp/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seededFactories(t *testing.T) (*gorm.DB, *GormFactoryRepository) {
	t.Helper()
	db := setupTestDB(t)
	repo := NewGormFactoryRepository(db)
	require.NoError(t, SeedFactories(context.Background(), repo))
	return db, repo
}

func TestGormFactoryRepository_FindActive(t *testing.T) {
	db, repo := seededFactories(t)
	ctx := context.Background()

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	names := make([]string, len(active))
	for i, f := range active {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Ottawa", "Shanghai", "Stargard"}, names)

	require.NoError(t, db.Model(&models.FactoryModel{}).Where("id = ?", 260).Update("is_active", false).Error)

	active, err = repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestGormFactoryRepository_ExistsAndIsActive(t *testing.T) {
	db, repo := seededFactories(t)
	ctx := context.Background()
	require.NoError(t, db.Model(&models.FactoryModel{}).Where("id = ?", 276).Update("is_active", false).Error)

	tests := []struct {
		id   int
		want bool
	}{
		{241, true},
		{276, false},
		{999, false},
	}
	for _, tt := range tests {
		got, err := repo.ExistsAndIsActive(ctx, tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "factory %d", tt.id)
	}
}

func TestGormFactoryRepository_FindByID(t *testing.T) {
	_, repo := seededFactories(t)
	ctx := context.Background()

	f, err := repo.FindByID(ctx, 241)
	require.NoError(t, err)
	assert.Equal(t, &factory.Factory{ID: 241, Name: "Stargard", IsActive: true}, f)

	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSeedFactories_KeepsExistingState(t *testing.T) {
	db, repo := seededFactories(t)
	ctx := context.Background()
	require.NoError(t, db.Model(&models.FactoryModel{}).Where("id = ?", 241).Update("is_active", false).Error)

	require.NoError(t, SeedFactories(ctx, repo))

	f, err := repo.FindByID(ctx, 241)
	require.NoError(t, err)
	assert.False(t, f.IsActive)

	var count int64
	require.NoError(t, db.Model(&models.FactoryModel{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	factoryID := 241
	user, err := identity.NewUser("u-1", "anna", "Anna@Example.com", &factoryID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", found.Email)
	require.NotNil(t, found.FactoryID)
	assert.Equal(t, 241, *found.FactoryID)

	require.NoError(t, user.AssignFactory(276))
	require.NoError(t, repo.Save(ctx, user))
	found, err = repo.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 276, *found.FactoryID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func newUpdate(po string, line int, factoryID int) *massupdate.ReceiptDateUpdate {
	d := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	return massupdate.NewReceiptDateUpdate(massupdate.NewReceiptDateUpdateInput{
		PurchaseOrderNumber: po,
		LineNumber:          line,
		Sequence:            1,
		ReceiptDate:         &d,
		DateType:            massupdate.DateTypeConfirmed,
		UserID:              "u-1",
		FactoryID:           factoryID,
	})
}

func TestGormReceiptDateUpdateRepository_Add(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceiptDateUpdateRepository(db)
	ctx := context.Background()

	first := newUpdate("P00000001", 10, 241)
	second := newUpdate("P00000002", 20, 241)
	other := newUpdate("P00000003", 10, 276)
	require.NoError(t, repo.Add(ctx, first, second, other))
	require.NoError(t, repo.Add(ctx))

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	pending, err := repo.FindPending(ctx, 241)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "P00000001", pending[0].PurchaseOrderNumber)
	assert.Equal(t, massupdate.DateTypeConfirmed, pending[0].DateType)
	assert.True(t, first.ReceiptDate.Equal(*pending[0].ReceiptDate))
	assert.False(t, pending[0].IsGenerated)
}

func TestGormUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceiptDateUpdateRepository(db)
	uow := NewGormUnitOfWork(db)

	ctx, tx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, newUpdate("P00000001", 10, 241)))
	require.NoError(t, tx.Rollback(ctx))
	tx.Release()

	pending, err := repo.FindPending(context.Background(), 241)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ctx, tx, err = uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, newUpdate("P00000001", 10, 241)))
	require.NoError(t, tx.Commit(ctx))
	tx.Release()

	pending, err = repo.FindPending(context.Background(), 241)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
