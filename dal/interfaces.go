package dal

import (
	"context"
	"errors"

	"gearguard-backend/models"
)

var (
	// ErrDuplicateKey is returned when a create would overwrite an existing item
	// or violate a unique index
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned by UpdateItem when the target item does not exist
	ErrNotFound = errors.New("item not found")

	// ErrConditionFailed is returned by UpdateItemIf when the item is missing
	// or one of the expected attribute values no longer matches
	ErrConditionFailed = errors.New("condition failed")
)

// DatabaseClientInterface defines the contract for database operations.
// Both the DynamoDB and MongoDB clients implement it; every table uses "id" as its key.
type DatabaseClientInterface interface {
	// Core CRUD operations
	GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error
	PutItem(ctx context.Context, tableName string, item interface{}) error
	CreateItem(ctx context.Context, tableName, key string, item interface{}) error
	UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error
	UpdateItemIf(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error
	DeleteItem(ctx context.Context, tableName, key, value string) error

	// Query and Scan operations
	QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error
	ScanTable(ctx context.Context, tableName string, results interface{}) error
	CountItems(ctx context.Context, tableName string, filter map[string]string) (int64, error)

	// Table management operations
	EnsureTable(ctx context.Context, def models.TableDefinition) (bool, error)

	Driver() string
	Close(ctx context.Context) error
}

// DALContainerInterface defines the contract for the DAL container
type DALContainerInterface interface {
	GetDatabaseClient() DatabaseClientInterface
}
