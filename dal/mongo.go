package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoNamespaceExists = 48

// MongoClient implements DatabaseClientInterface on a MongoDB database.
// Documents are keyed by their "id" field; Mongo's own _id is never read.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

// NewMongoClient connects to MongoDB and verifies the connection with a ping
func NewMongoClient(ctx context.Context, cfg *models.Config, log logger.Logger) (*MongoClient, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("mongo_uri is required when store_driver is mongo")
	}

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetMaxPoolSize(50)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Infof("MongoDB client connected (database=%s)", cfg.MongoDatabase)
	return newMongoClientWithDatabase(client, client.Database(cfg.MongoDatabase), log), nil
}

func newMongoClientWithDatabase(client *mongo.Client, db *mongo.Database, log logger.Logger) *MongoClient {
	return &MongoClient{client: client, db: db, logger: log}
}

func (m *MongoClient) Driver() string {
	return "mongo"
}

// Close disconnects from MongoDB
func (m *MongoClient) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

func (m *MongoClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	err := m.db.Collection(cfg.TableName).FindOne(ctx, bson.M{cfg.KeyName: cfg.KeyValue}).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		m.logger.Errorf("Failed to find item in %s: %v", cfg.TableName, err)
	}
	return err
}

// PutItem upserts the document by its id
func (m *MongoClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	doc, err := toDocument(item)
	if err != nil {
		return err
	}

	id, ok := doc["id"]
	if !ok {
		return fmt.Errorf("item for %s has no id field", tableName)
	}

	_, err = m.db.Collection(tableName).ReplaceOne(ctx, bson.M{"id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// CreateItem inserts a new document; unique index violations map to ErrDuplicateKey
func (m *MongoClient) CreateItem(ctx context.Context, tableName, key string, item interface{}) error {
	_, err := m.db.Collection(tableName).InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateItem applies $set for non-nil values and $unset for nil values
func (m *MongoClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	err := m.updateOne(ctx, tableName, bson.M{key: keyValue}, updates)
	if errors.Is(err, ErrConditionFailed) {
		return ErrNotFound
	}
	return err
}

// UpdateItemIf folds the expected values into the filter, so a document whose
// values changed in between is not matched and nothing is written
func (m *MongoClient) UpdateItemIf(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error {
	filter := bson.M{key: keyValue}
	for field, value := range expected {
		filter[field] = value
	}
	return m.updateOne(ctx, tableName, filter, updates)
}

func (m *MongoClient) updateOne(ctx context.Context, tableName string, filter bson.M, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	set := bson.M{}
	unset := bson.M{}
	for field, value := range updates {
		if value == nil {
			unset[field] = ""
		} else {
			set[field] = value
		}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := m.db.Collection(tableName).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (m *MongoClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	_, err := m.db.Collection(tableName).DeleteOne(ctx, bson.M{key: value})
	return err
}

// QueryByIndex finds every document whose keyName equals keyValue
func (m *MongoClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	cursor, err := m.db.Collection(tableName).Find(ctx, bson.M{keyName: keyValue})
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (m *MongoClient) ScanTable(ctx context.Context, tableName string, results interface{}) error {
	cursor, err := m.db.Collection(tableName).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (m *MongoClient) CountItems(ctx context.Context, tableName string, filter map[string]string) (int64, error) {
	query := bson.M{}
	for field, value := range filter {
		query[field] = value
	}
	return m.db.Collection(tableName).CountDocuments(ctx, query)
}

// EnsureTable creates the collection and its indexes. Index creation is idempotent.
func (m *MongoClient) EnsureTable(ctx context.Context, def models.TableDefinition) (bool, error) {
	created := true
	if err := m.db.CreateCollection(ctx, def.TableName); err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != mongoNamespaceExists {
			return false, fmt.Errorf("failed to create collection %s: %w", def.TableName, err)
		}
		created = false
	}

	indexes := []mongo.IndexModel{{
		Keys:    bson.D{{Key: def.HashKey, Value: 1}},
		Options: options.Index().SetName(def.HashKey + "-key").SetUnique(true),
	}}
	for _, idx := range def.Indexes {
		opts := options.Index().SetName(idx.IndexName)
		if idx.Unique {
			opts.SetUnique(true)
		} else {
			opts.SetSparse(true)
		}
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.KeyName, Value: 1}},
			Options: opts,
		})
	}

	if _, err := m.db.Collection(def.TableName).Indexes().CreateMany(ctx, indexes); err != nil {
		return created, fmt.Errorf("failed to create indexes on %s: %w", def.TableName, err)
	}

	m.logger.Infof("Ensured collection %s with %d indexes", def.TableName, len(indexes))
	return created, nil
}

func toDocument(item interface{}) (bson.M, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return doc, nil
}
