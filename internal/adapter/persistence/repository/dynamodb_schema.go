package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableSchema struct {
	name    string
	hashKey string
	sortKey string
	indexes map[string]string // index name -> hash key attribute
}

func (t DynamoTables) schemas() []tableSchema {
	t = t.WithDefaults()
	return []tableSchema{
		{name: t.Customers, hashKey: "id", indexes: map[string]string{customerPhoneIndex: "phone"}},
		{name: t.Vehicles, hashKey: "id", indexes: map[string]string{customerIDIndex: "customer_id"}},
		{name: t.Conversations, hashKey: "id", indexes: map[string]string{customerIDIndex: "customer_id"}},
		{name: t.ConversationVehicles, hashKey: "conversation_id", sortKey: "vehicle_id"},
		{name: t.RiskSnapshots, hashKey: "id"},
		{name: t.Quotes, hashKey: "id", indexes: map[string]string{conversationIDIndex: "conversation_id"}},
		{name: t.QuoteAlternatives, hashKey: "quote_id", sortKey: "id"},
		{name: t.UniqueKeys, hashKey: "pk"},
	}
}

// EnsureDynamoTables creates every missing table (on-demand billing) and
// waits until each is active. Existing tables are left untouched.
func EnsureDynamoTables(ctx context.Context, ddb *dynamodb.Client, tables DynamoTables) error {
	for _, s := range tables.schemas() {
		_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)})
		if err == nil {
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return fmt.Errorf("describe table %s: %w", s.name, err)
		}

		if _, err := ddb.CreateTable(ctx, s.createInput()); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return fmt.Errorf("create table %s: %w", s.name, err)
		}
		w := dynamodb.NewTableExistsWaiter(ddb)
		if err := w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)}, 2*time.Minute); err != nil {
			return fmt.Errorf("wait table %s: %w", s.name, err)
		}
	}
	return nil
}

func (s tableSchema) createInput() *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{s.hashKey: {}}
	keys := []types.KeySchemaElement{{AttributeName: aws.String(s.hashKey), KeyType: types.KeyTypeHash}}
	if s.sortKey != "" {
		attrs[s.sortKey] = struct{}{}
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(s.sortKey), KeyType: types.KeyTypeRange})
	}

	var gsis []types.GlobalSecondaryIndex
	for name, hash := range s.indexes {
		attrs[hash] = struct{}{}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	defs := make([]types.AttributeDefinition, 0, len(attrs))
	for a := range attrs {
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(a), AttributeType: types.ScalarAttributeTypeS})
	}

	return &dynamodb.CreateTableInput{
		TableName:              aws.String(s.name),
		KeySchema:              keys,
		AttributeDefinitions:   defs,
		GlobalSecondaryIndexes: gsis,
		BillingMode:            types.BillingModePayPerRequest,
	}
}
