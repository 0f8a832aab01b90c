package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Fixed-width so that string order in DynamoDB equals time order.
const itemTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const maxTransactItems = 100

// DynamoTables names every table used by the DynamoDB repositories.
type DynamoTables struct {
	Customers            string
	Vehicles             string
	Conversations        string
	ConversationVehicles string
	RiskSnapshots        string
	Quotes               string
	QuoteAlternatives    string
	UniqueKeys           string
}

func DefaultDynamoTables() DynamoTables {
	return DynamoTables{
		Customers:            "customers",
		Vehicles:             "vehicles",
		Conversations:        "conversations",
		ConversationVehicles: "conversation_vehicles",
		RiskSnapshots:        "risk_snapshots",
		Quotes:               "quotes",
		QuoteAlternatives:    "quote_alternatives",
		UniqueKeys:           "unique_keys",
	}
}

// WithDefaults fills blank table names.
func (t DynamoTables) WithDefaults() DynamoTables {
	d := DefaultDynamoTables()
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}
	return DynamoTables{
		Customers:            pick(t.Customers, d.Customers),
		Vehicles:             pick(t.Vehicles, d.Vehicles),
		Conversations:        pick(t.Conversations, d.Conversations),
		ConversationVehicles: pick(t.ConversationVehicles, d.ConversationVehicles),
		RiskSnapshots:        pick(t.RiskSnapshots, d.RiskSnapshots),
		Quotes:               pick(t.Quotes, d.Quotes),
		QuoteAlternatives:    pick(t.QuoteAlternatives, d.QuoteAlternatives),
		UniqueKeys:           pick(t.UniqueKeys, d.UniqueKeys),
	}
}

// uniqueKeyItem reserves one unique value (dni, email, plate, external
// conversation id) for its owner.
type uniqueKeyItem struct {
	PK      string `dynamodbav:"pk"`
	OwnerID string `dynamodbav:"owner_id"`
}

func uniqueKey(entity, field, value string) string {
	return entity + "#" + field + "#" + value
}

func formatItemTime(t time.Time) string {
	return t.UTC().Format(itemTimeLayout)
}

func parseItemTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatItemTime(*t)
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseItemTime(s)
	return &t
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// canceledReasons returns the per-item cancellation codes of a failed
// TransactWriteItems call, or nil when err is not a cancellation.
func canceledReasons(err error) []string {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil
	}
	codes := make([]string, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		if r.Code != nil {
			codes[i] = *r.Code
		}
	}
	return codes
}

func conditionFailedAt(codes []string, idx int) bool {
	return idx < len(codes) && codes[idx] == "ConditionalCheckFailed"
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func uniqueKeyPut(table, key, ownerID string) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(uniqueKeyItem{PK: key, OwnerID: ownerID})
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(table),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
			ExpressionAttributeNames: map[string]string{"#pk": "pk"},
		},
	}, nil
}

// lookupUniqueOwner returns the owner id reserved under key, or "".
func lookupUniqueOwner(ctx context.Context, ddb *dynamodb.Client, table, key string) (string, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if len(out.Item) == 0 {
		return "", nil
	}
	var it uniqueKeyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return "", err
	}
	return it.OwnerID, nil
}

func getItemByID(ctx context.Context, ddb *dynamodb.Client, table, id string, into any) (bool, error) {
	out, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(out.Item, into)
}
