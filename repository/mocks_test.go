package repository

import (
	"context"

	"gearguard-backend/models"

	"github.com/stretchr/testify/mock"
)

// MockDatabaseClient is a mock implementation of dal.DatabaseClientInterface
type MockDatabaseClient struct {
	mock.Mock
}

func (m *MockDatabaseClient) GetItem(ctx context.Context, config models.QueryConfig, result interface{}) error {
	args := m.Called(ctx, config, result)
	return args.Error(0)
}

func (m *MockDatabaseClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	args := m.Called(ctx, tableName, item)
	return args.Error(0)
}

func (m *MockDatabaseClient) CreateItem(ctx context.Context, tableName, key string, item interface{}) error {
	args := m.Called(ctx, tableName, key, item)
	return args.Error(0)
}

func (m *MockDatabaseClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	args := m.Called(ctx, tableName, key, keyValue, updates)
	return args.Error(0)
}

func (m *MockDatabaseClient) UpdateItemIf(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error {
	args := m.Called(ctx, tableName, key, keyValue, updates, expected)
	return args.Error(0)
}

func (m *MockDatabaseClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	args := m.Called(ctx, tableName, key, value)
	return args.Error(0)
}

func (m *MockDatabaseClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	args := m.Called(ctx, tableName, indexName, keyName, keyValue, results)
	return args.Error(0)
}

func (m *MockDatabaseClient) ScanTable(ctx context.Context, tableName string, results interface{}) error {
	args := m.Called(ctx, tableName, results)
	return args.Error(0)
}

func (m *MockDatabaseClient) CountItems(ctx context.Context, tableName string, filter map[string]string) (int64, error) {
	args := m.Called(ctx, tableName, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDatabaseClient) EnsureTable(ctx context.Context, def models.TableDefinition) (bool, error) {
	args := m.Called(ctx, def)
	return args.Bool(0), args.Error(1)
}

func (m *MockDatabaseClient) Driver() string {
	return "mock"
}

func (m *MockDatabaseClient) Close(ctx context.Context) error {
	return nil
}
