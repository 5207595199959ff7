package dal

import (
	"context"
	"fmt"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"
)

// DALContainer owns the store client selected by configuration
type DALContainer struct {
	databaseClient DatabaseClientInterface
}

// NewDALContainer connects to the configured store
func NewDALContainer(ctx context.Context, cfg *models.Config, log logger.Logger) (*DALContainer, error) {
	var (
		client DatabaseClientInterface
		err    error
	)

	switch cfg.StoreDriver {
	case "mongo":
		client, err = NewMongoClient(ctx, cfg, log)
	case "dynamodb", "":
		client, err = NewDynamoDBClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	return &DALContainer{databaseClient: client}, nil
}

// NewDALContainerWithClient wraps an existing client
func NewDALContainerWithClient(client DatabaseClientInterface) *DALContainer {
	return &DALContainer{databaseClient: client}
}

func (d *DALContainer) GetDatabaseClient() DatabaseClientInterface {
	return d.databaseClient
}

// Close releases the store connection
func (d *DALContainer) Close(ctx context.Context) error {
	if d.databaseClient == nil {
		return nil
	}
	return d.databaseClient.Close(ctx)
}
