// Package repository defines the interfaces for the persistence layer.
package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
	EventRepo() EventRepository
	GearRepo() GearRepository
}

// TransactionManager runs a unit of work inside a single database transaction.
// The callback receives a factory whose repositories all share that transaction.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
