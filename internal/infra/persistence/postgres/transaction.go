package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"agrimap/internal/domain/repository"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object (*gorm.Tx) and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx     *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
	logger *slog.Logger
}

// NewUserRepository creates a new user repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx, f.logger)
}

// NewFarmRepository creates a new farm repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewFarmRepository() repository.FarmRepository {
	return NewFarmRepository(f.tx, f.logger)
}

// NewAccessTokenRepository creates a new access token repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewAccessTokenRepository() repository.AccessTokenRepository {
	return NewAccessTokenRepository(f.tx, f.logger)
}

// TransactionManagerParams holds dependencies for the transaction manager, injected by Fx.
type TransactionManagerParams struct {
	fx.In

	DB     *gorm.DB
	Logger *slog.Logger
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(params TransactionManagerParams) repository.TransactionManager {
	return &gormTransactionManager{db: params.DB, logger: params.Logger}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	// Begin a new transaction
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back. This is a critical safety measure.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	// Create a repository factory that is bound to this specific transaction.
	factory := &gormRepositoryFactory{tx: tx, logger: tm.logger}

	// Execute the application logic (the use case's core work)
	err := fn(factory)
	if err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Log the rollback error, but return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err // Return the original business error.
	}

	// If the business logic completes without error, commit the transaction.
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
