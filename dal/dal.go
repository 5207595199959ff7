package dal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gearguard-backend/models"
	"gearguard-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// dynamoAPI is the subset of *dynamodb.Client used here
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type DynamoDBClient struct {
	client       dynamoAPI
	config       *models.Config
	logger       logger.Logger
	tableTimeout time.Duration
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(ctx context.Context, cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// local DynamoDB
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	log.Infof("DynamoDB client initialized (region=%s, prefix=%s)", cfg.AWSRegion, cfg.DynamoDBTablePrefix)
	return newDynamoDBClientWithAPI(client, cfg, log), nil
}

func newDynamoDBClientWithAPI(api dynamoAPI, cfg *models.Config, log logger.Logger) *DynamoDBClient {
	return &DynamoDBClient{
		client:       api,
		config:       cfg,
		logger:       log,
		tableTimeout: 2 * time.Minute,
	}
}

func (db *DynamoDBClient) Driver() string {
	return "dynamodb"
}

func (db *DynamoDBClient) Close(ctx context.Context) error {
	return nil
}

// GetItem fetches a single item by primary key, or the first match on a secondary index.
// A missing item leaves result untouched and returns nil.
func (db *DynamoDBClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	keyValue := attributeValue(cfg.KeyType, cfg.KeyValue)

	if cfg.IndexName != "" {
		output, err := db.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(cfg.TableName),
			IndexName:                 aws.String(cfg.IndexName),
			KeyConditionExpression:    aws.String("#k = :v"),
			ExpressionAttributeNames:  map[string]string{"#k": cfg.KeyName},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": keyValue},
			Limit:                     aws.Int32(1),
		})
		if err != nil {
			db.logger.Errorf("Failed to query %s on %s: %v", cfg.IndexName, cfg.TableName, err)
			return err
		}
		if len(output.Items) == 0 {
			return nil
		}
		return attributevalue.UnmarshalMap(output.Items[0], result)
	}

	output, err := db.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(cfg.TableName),
		Key:       map[string]types.AttributeValue{cfg.KeyName: keyValue},
	})
	if err != nil {
		db.logger.Errorf("Failed to get item from %s: %v", cfg.TableName, err)
		return err
	}

	if output.Item == nil {
		return nil
	}

	return attributevalue.UnmarshalMap(output.Item, result)
}

// PutItem stores an item, replacing any existing item with the same key
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	})
	return err
}

// CreateItem stores an item only if no item with the same key exists
func (db *DynamoDBClient) CreateItem(ctx context.Context, tableName, key string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": key},
	})
	if isConditionFailed(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateItem sets the given attributes on an existing item. A nil value removes the attribute.
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	err := db.updateItem(ctx, tableName, key, keyValue, updates, nil)
	if errors.Is(err, ErrConditionFailed) {
		return ErrNotFound
	}
	return err
}

// UpdateItemIf applies updates only while every expected attribute still holds
// the given value. The check and the write are one conditional UpdateItem call.
func (db *DynamoDBClient) UpdateItemIf(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error {
	return db.updateItem(ctx, tableName, key, keyValue, updates, expected)
}

func (db *DynamoDBClient) updateItem(ctx context.Context, tableName, key, keyValue string, updates, expected map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	expression, names, values, err := buildUpdateExpression(updates)
	if err != nil {
		return err
	}
	names["#pk"] = key

	condition, err := buildConditionExpression(expected, names, values)
	if err != nil {
		return err
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:         aws.String(expression),
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: names,
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}

	_, err = db.client.UpdateItem(ctx, input)
	if isConditionFailed(err) {
		return ErrConditionFailed
	}
	return err
}

// DeleteItem deletes an item from DynamoDB
func (db *DynamoDBClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	_, err := db.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
	})
	return err
}

// QueryByIndex returns every item on a global secondary index matching keyValue
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	paginator := dynamodb.NewQueryPaginator(db.client, &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": keyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: keyValue},
		},
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// ScanTable reads the whole table, following pagination
func (db *DynamoDBClient) ScanTable(ctx context.Context, tableName string, results interface{}) error {
	paginator := dynamodb.NewScanPaginator(db.client, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(items, results)
}

// CountItems counts items whose string attributes equal every value in filter
func (db *DynamoDBClient) CountItems(ctx context.Context, tableName string, filter map[string]string) (int64, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(tableName),
		Select:    types.SelectCount,
	}

	if len(filter) > 0 {
		fields := make([]string, 0, len(filter))
		for field := range filter {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		names := make(map[string]string, len(fields))
		values := make(map[string]types.AttributeValue, len(fields))
		clauses := make([]string, 0, len(fields))
		for i, field := range fields {
			n := fmt.Sprintf("#f%d", i)
			v := fmt.Sprintf(":f%d", i)
			names[n] = field
			values[v] = &types.AttributeValueMemberS{Value: filter[field]}
			clauses = append(clauses, n+" = "+v)
		}
		input.FilterExpression = aws.String(strings.Join(clauses, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var total int64
	paginator := dynamodb.NewScanPaginator(db.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int64(page.Count)
	}
	return total, nil
}

// EnsureTable creates the table with its indexes when it does not exist yet.
// It reports whether the table was created.
func (db *DynamoDBClient) EnsureTable(ctx context.Context, def models.TableDefinition) (bool, error) {
	_, err := db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.TableName)})
	if err == nil {
		db.logger.Infof("Table %s already exists, skipping creation", def.TableName)
		return false, nil
	}
	if !isTableNotFoundError(err) {
		return false, fmt.Errorf("failed to describe table %s: %w", def.TableName, err)
	}

	if _, err := db.client.CreateTable(ctx, createTableInput(def)); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", def.TableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(db.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(def.TableName)}, db.tableTimeout); err != nil {
		return true, fmt.Errorf("table %s did not become active: %w", def.TableName, err)
	}

	db.logger.Infof("Created table %s with %d indexes", def.TableName, len(def.Indexes))
	return true, nil
}

// createTableInput converts a table definition into an on-demand CreateTableInput
func createTableInput(def models.TableDefinition) *dynamodb.CreateTableInput {
	seen := map[string]bool{def.HashKey: true}
	attrs := []types.AttributeDefinition{{
		AttributeName: aws.String(def.HashKey),
		AttributeType: types.ScalarAttributeTypeS,
	}}

	var gsis []types.GlobalSecondaryIndex
	for _, idx := range def.Indexes {
		if !seen[idx.KeyName] {
			seen[idx.KeyName] = true
			attrs = append(attrs, types.AttributeDefinition{
				AttributeName: aws.String(idx.KeyName),
				AttributeType: types.ScalarAttributeTypeS,
			})
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(idx.IndexName),
			KeySchema: []types.KeySchemaElement{{
				AttributeName: aws.String(idx.KeyName),
				KeyType:       types.KeyTypeHash,
			}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(def.TableName),
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(def.HashKey),
			KeyType:       types.KeyTypeHash,
		}},
		BillingMode:            types.BillingModePayPerRequest,
		GlobalSecondaryIndexes: gsis,
	}
}

// buildUpdateExpression renders SET and REMOVE clauses in a stable field order
func buildUpdateExpression(updates map[string]interface{}) (string, map[string]string, map[string]types.AttributeValue, error) {
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	names := make(map[string]string)
	values := make(map[string]types.AttributeValue)
	var sets, removes []string

	for _, field := range fields {
		attrName := "#" + field
		names[attrName] = field

		value := updates[field]
		if value == nil {
			removes = append(removes, attrName)
			continue
		}

		av, err := attributevalue.Marshal(value)
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		attrValue := ":" + field
		values[attrValue] = av
		sets = append(sets, attrName+" = "+attrValue)
	}

	var parts []string
	if len(sets) > 0 {
		parts = append(parts, "SET "+strings.Join(sets, ", "))
	}
	if len(removes) > 0 {
		parts = append(parts, "REMOVE "+strings.Join(removes, ", "))
	}
	return strings.Join(parts, " "), names, values, nil
}

// buildConditionExpression requires the item to exist and every expected
// attribute to equal its value. Placeholders use a cond prefix so they never
// collide with the update expression's own names.
func buildConditionExpression(expected map[string]interface{}, names map[string]string, values map[string]types.AttributeValue) (string, error) {
	fields := make([]string, 0, len(expected))
	for field := range expected {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := []string{"attribute_exists(#pk)"}
	for i, field := range fields {
		av, err := attributevalue.Marshal(expected[field])
		if err != nil {
			return "", fmt.Errorf("failed to marshal condition on %s: %w", field, err)
		}
		name := fmt.Sprintf("#cond%d", i)
		value := fmt.Sprintf(":cond%d", i)
		names[name] = field
		values[value] = av
		parts = append(parts, name+" = "+value)
	}
	return strings.Join(parts, " AND "), nil
}

func attributeValue(keyType models.AttributeType, value string) types.AttributeValue {
	switch keyType {
	case models.NumberType:
		return &types.AttributeValueMemberN{Value: value}
	case models.BinaryType:
		return &types.AttributeValueMemberB{Value: []byte(value)}
	default:
		return &types.AttributeValueMemberS{Value: value}
	}
}

func isConditionFailed(err error) bool {
	if err == nil {
		return false
	}
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// isTableNotFoundError checks if error indicates table not found
func isTableNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	return strings.Contains(err.Error(), "ResourceNotFoundException")
}
