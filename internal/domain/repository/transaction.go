package repository

import "context"

// TransactionManager defines the interface for managing database
// transactions. It lets the use case layer group persistence operations
// atomically without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction. If the function
	// returns an error, the transaction is rolled back; otherwise it is
	// committed. All repository operations within the function use the same
	// database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside a transaction shares one
// database connection.
type RepositoryFactory interface {
	// PassengerRepo returns a PassengerRepository bound to the current
	// transaction.
	PassengerRepo() PassengerRepository
}
