package repository

import (
	"context"
	"sort"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type conversationItem struct {
	ID             string `dynamodbav:"id"`
	ExternalID     string `dynamodbav:"external_conversation_id"`
	ExternalUserID string `dynamodbav:"external_user_id,omitempty"`
	CustomerID     string `dynamodbav:"customer_id,omitempty"`
	Status         string `dynamodbav:"status"`
	LastActivityAt string `dynamodbav:"last_activity_at,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

type conversationVehicleItem struct {
	ConversationID string `dynamodbav:"conversation_id"`
	VehicleID      string `dynamodbav:"vehicle_id"`
	IsPrimary      bool   `dynamodbav:"is_primary"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// ConversationDynamoRepository persists conversations in DynamoDB.
//
// Table requirements:
//   - conversations PK: id (string); GSI customer_id-index (PK customer_id)
//   - conversation_vehicles PK: conversation_id, SK: vehicle_id
//   - unique_keys holds one item per external conversation id
type ConversationDynamoRepository struct {
	ddb    *dynamodb.Client
	tables DynamoTables
}

var _ interfaces.IConversationRepository = (*ConversationDynamoRepository)(nil)

func NewConversationDynamoRepository(ddb *dynamodb.Client, tables DynamoTables) *ConversationDynamoRepository {
	return &ConversationDynamoRepository{ddb: ddb, tables: tables.WithDefaults()}
}

func (r *ConversationDynamoRepository) FindOrCreate(ctx context.Context, c entities.Conversation) (entities.Conversation, error) {
	existing, err := r.GetByExternalID(ctx, c.ExternalID)
	if err != nil || existing.ID != "" {
		return existing, err
	}

	av, err := attributevalue.MarshalMap(toConversationItem(c))
	if err != nil {
		return entities.Conversation{}, err
	}
	extKey, err := uniqueKeyPut(r.tables.UniqueKeys, uniqueKey("conversation", "ext", c.ExternalID), c.ID)
	if err != nil {
		return entities.Conversation{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			extKey,
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Conversations),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil && canceledReasons(err) == nil {
		return entities.Conversation{}, err
	}
	// a concurrent caller may have won the external id; read whichever row holds it
	return r.GetByExternalID(ctx, c.ExternalID)
}

func (r *ConversationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Conversation, error) {
	var it conversationItem
	ok, err := getItemByID(ctx, r.ddb, r.tables.Conversations, id, &it)
	if err != nil || !ok {
		return entities.Conversation{}, err
	}
	return fromConversationItem(it), nil
}

func (r *ConversationDynamoRepository) GetByExternalID(ctx context.Context, externalID string) (entities.Conversation, error) {
	owner, err := lookupUniqueOwner(ctx, r.ddb, r.tables.UniqueKeys, uniqueKey("conversation", "ext", externalID))
	if err != nil || owner == "" {
		return entities.Conversation{}, err
	}
	return r.GetByID(ctx, owner)
}

func (r *ConversationDynamoRepository) LinkCustomer(ctx context.Context, conversationID, customerID string, at time.Time) (entities.Conversation, error) {
	now := formatItemTime(at)
	linked, err := r.update(ctx, conversationID, "SET #customer_id = :customer_id, #last_activity_at = :now, #updated_at = :now",
		map[string]types.AttributeValue{
			":customer_id": &types.AttributeValueMemberS{Value: customerID},
			":now":         &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{
			"#customer_id":      "customer_id",
			"#last_activity_at": "last_activity_at",
			"#updated_at":       "updated_at",
		})
	if err != nil || linked.ID == "" || linked.Status != entities.ConversationStatusAnonymous {
		return linked, err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Conversations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: conversationID},
		},
		ConditionExpression: aws.String("#status = :anonymous"),
		UpdateExpression:    aws.String("SET #status = :identified"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":anonymous":  &types.AttributeValueMemberS{Value: string(entities.ConversationStatusAnonymous)},
			":identified": &types.AttributeValueMemberS{Value: string(entities.ConversationStatusIdentified)},
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return entities.Conversation{}, err
	}
	return r.GetByID(ctx, conversationID)
}

func (r *ConversationDynamoRepository) TouchActivity(ctx context.Context, conversationID string, at time.Time) error {
	now := formatItemTime(at)
	_, err := r.update(ctx, conversationID, "SET #last_activity_at = :now, #updated_at = :now",
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{
			"#last_activity_at": "last_activity_at",
			"#updated_at":       "updated_at",
		})
	return err
}

func (r *ConversationDynamoRepository) AttachVehicle(ctx context.Context, conversationID, vehicleID string, primary bool) error {
	if primary {
		links, err := r.links(ctx, conversationID)
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.VehicleID == vehicleID || !l.IsPrimary {
				continue
			}
			if err := r.setPrimary(ctx, conversationID, l.VehicleID, false); err != nil {
				return err
			}
		}
	}
	return r.setPrimary(ctx, conversationID, vehicleID, primary)
}

// setPrimary upserts the pivot item, keeping its original created_at.
func (r *ConversationDynamoRepository) setPrimary(ctx context.Context, conversationID, vehicleID string, primary bool) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.ConversationVehicles),
		Key: map[string]types.AttributeValue{
			"conversation_id": &types.AttributeValueMemberS{Value: conversationID},
			"vehicle_id":      &types.AttributeValueMemberS{Value: vehicleID},
		},
		UpdateExpression: aws.String("SET #is_primary = :primary, #created_at = if_not_exists(#created_at, :now)"),
		ExpressionAttributeNames: map[string]string{
			"#is_primary": "is_primary",
			"#created_at": "created_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":primary": &types.AttributeValueMemberBOOL{Value: primary},
			":now":     &types.AttributeValueMemberS{Value: formatItemTime(time.Now())},
		},
	})
	return err
}

func (r *ConversationDynamoRepository) links(ctx context.Context, conversationID string) ([]conversationVehicleItem, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.ConversationVehicles),
		KeyConditionExpression: aws.String("#conversation_id = :conversation_id"),
		ExpressionAttributeNames: map[string]string{
			"#conversation_id": "conversation_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var items []conversationVehicleItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ConversationDynamoRepository) CountVehicles(ctx context.Context, conversationID string) (int, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.ConversationVehicles),
		KeyConditionExpression: aws.String("#conversation_id = :conversation_id"),
		ExpressionAttributeNames: map[string]string{
			"#conversation_id": "conversation_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}

func (r *ConversationDynamoRepository) ListByCustomer(ctx context.Context, customerID, excludeID string, limit int) ([]entities.Conversation, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Conversations),
		IndexName:              aws.String(customerIDIndex),
		KeyConditionExpression: aws.String("#customer_id = :customer_id"),
		FilterExpression:       aws.String("#status <> :anonymous"),
		ExpressionAttributeNames: map[string]string{
			"#customer_id": "customer_id",
			"#status":      "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":customer_id": &types.AttributeValueMemberS{Value: customerID},
			":anonymous":   &types.AttributeValueMemberS{Value: string(entities.ConversationStatusAnonymous)},
		},
	})
	if err != nil {
		return nil, err
	}
	var items []conversationItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}

	convs := make([]entities.Conversation, 0, len(items))
	for _, it := range items {
		if it.ID == excludeID {
			continue
		}
		convs = append(convs, fromConversationItem(it))
	}
	sort.Slice(convs, func(i, j int) bool {
		return activityOf(convs[i]).After(activityOf(convs[j]))
	})
	if limit > 0 && len(convs) > limit {
		convs = convs[:limit]
	}
	return convs, nil
}

func (r *ConversationDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Conversation, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Conversations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Conversation{}, nil
		}
		return entities.Conversation{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Conversation{}, nil
	}
	var it conversationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Conversation{}, err
	}
	return fromConversationItem(it), nil
}

func activityOf(c entities.Conversation) time.Time {
	if c.LastActivityAt != nil {
		return *c.LastActivityAt
	}
	return c.CreatedAt
}

func toConversationItem(c entities.Conversation) conversationItem {
	status := c.Status
	if status == "" {
		status = entities.ConversationStatusAnonymous
	}
	return conversationItem{
		ID:             c.ID,
		ExternalID:     c.ExternalID,
		ExternalUserID: c.ExternalUserID,
		CustomerID:     c.CustomerID,
		Status:         string(status),
		LastActivityAt: formatOptionalTime(c.LastActivityAt),
		CreatedAt:      formatItemTime(c.CreatedAt),
		UpdatedAt:      formatItemTime(c.UpdatedAt),
	}
}

func fromConversationItem(it conversationItem) entities.Conversation {
	return entities.Conversation{
		ID:             it.ID,
		ExternalID:     it.ExternalID,
		ExternalUserID: it.ExternalUserID,
		CustomerID:     it.CustomerID,
		Status:         entities.ConversationStatus(it.Status),
		LastActivityAt: parseOptionalTime(it.LastActivityAt),
		CreatedAt:      parseItemTime(it.CreatedAt),
		UpdatedAt:      parseItemTime(it.UpdatedAt),
	}
}
