package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const customerPhoneIndex = "phone-index"

type customerItem struct {
	ID          string            `dynamodbav:"id"`
	DNI         string            `dynamodbav:"dni,omitempty"`
	Email       string            `dynamodbav:"email,omitempty"`
	Phone       string            `dynamodbav:"phone,omitempty"`
	Name        string            `dynamodbav:"name,omitempty"`
	IsAnonymous bool              `dynamodbav:"is_anonymous"`
	CompletedAt string            `dynamodbav:"completed_at,omitempty"`
	Metadata    map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt   string            `dynamodbav:"created_at"`
	UpdatedAt   string            `dynamodbav:"updated_at"`
}

// CustomerDynamoRepository persists customers in DynamoDB.
//
// Table requirements:
//   - customers PK: id (string); GSI phone-index (PK phone)
//   - unique_keys PK: pk (string), one item per dni and email
type CustomerDynamoRepository struct {
	ddb    *dynamodb.Client
	tables DynamoTables
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client, tables DynamoTables) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{ddb: ddb, tables: tables.WithDefaults()}
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	av, err := attributevalue.MarshalMap(toCustomerItem(c))
	if err != nil {
		return entities.Customer{}, err
	}

	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.tables.Customers),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}}
	for _, key := range customerUniqueKeys(c) {
		put, err := uniqueKeyPut(r.tables.UniqueKeys, key, c.ID)
		if err != nil {
			return entities.Customer{}, err
		}
		items = append(items, put)
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		if canceledReasons(err) != nil {
			return entities.Customer{}, interfaces.ErrDuplicateKey
		}
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	var it customerItem
	ok, err := getItemByID(ctx, r.ddb, r.tables.Customers, id, &it)
	if err != nil || !ok {
		return entities.Customer{}, err
	}
	return fromCustomerItem(it), nil
}

func (r *CustomerDynamoRepository) FindByIdentifier(ctx context.Context, id entities.Identifier) (entities.Customer, error) {
	switch id.Kind {
	case entities.IdentifierDNI, entities.IdentifierEmail:
		owner, err := lookupUniqueOwner(ctx, r.ddb, r.tables.UniqueKeys, uniqueKey("customer", id.Kind.String(), id.Value))
		if err != nil || owner == "" {
			return entities.Customer{}, err
		}
		return r.GetByID(ctx, owner)
	case entities.IdentifierPhone:
		return r.findByPhone(ctx, id.Value)
	case entities.IdentifierPlate:
	}
	return entities.Customer{}, fmt.Errorf("customer lookup by %s is not supported", id.Kind)
}

func (r *CustomerDynamoRepository) findByPhone(ctx context.Context, phone string) (entities.Customer, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Customers),
		IndexName:              aws.String(customerPhoneIndex),
		KeyConditionExpression: aws.String("#phone = :phone"),
		ExpressionAttributeNames: map[string]string{
			"#phone": "phone",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":phone": &types.AttributeValueMemberS{Value: phone},
		},
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Items) == 0 {
		return entities.Customer{}, nil
	}

	var items []customerItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return entities.Customer{}, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })
	return fromCustomerItem(items[0]), nil
}

// CompleteAnonymous updates the customer and reserves the new unique value in
// one transaction. A customer that is no longer anonymous yields the zero
// Customer; a value owned by someone else yields ErrDuplicateKey.
func (r *CustomerDynamoRepository) CompleteAnonymous(ctx context.Context, id string, identifier entities.Identifier, at time.Time) (entities.Customer, error) {
	field, err := identifierColumn(identifier.Kind)
	if err != nil {
		return entities.Customer{}, err
	}
	now := formatItemTime(at)

	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName: aws.String(r.tables.Customers),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			ConditionExpression: aws.String("attribute_exists(#id) AND #anon = :true"),
			UpdateExpression:    aws.String("SET #field = :value, #anon = :false, #completed_at = :now, #updated_at = :now"),
			ExpressionAttributeNames: map[string]string{
				"#id":           "id",
				"#field":        field,
				"#anon":         "is_anonymous",
				"#completed_at": "completed_at",
				"#updated_at":   "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":value": &types.AttributeValueMemberS{Value: identifier.Value},
				":true":  &types.AttributeValueMemberBOOL{Value: true},
				":false": &types.AttributeValueMemberBOOL{Value: false},
				":now":   &types.AttributeValueMemberS{Value: now},
			},
		},
	}}
	if identifier.Kind != entities.IdentifierPhone {
		put, err := uniqueKeyPut(r.tables.UniqueKeys, uniqueKey("customer", identifier.Kind.String(), identifier.Value), id)
		if err != nil {
			return entities.Customer{}, err
		}
		items = append(items, put)
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		codes := canceledReasons(err)
		switch {
		case codes == nil:
			return entities.Customer{}, err
		case conditionFailedAt(codes, 0):
			return entities.Customer{}, nil
		default:
			return entities.Customer{}, interfaces.ErrDuplicateKey
		}
	}
	return r.GetByID(ctx, id)
}

func customerUniqueKeys(c entities.Customer) []string {
	var keys []string
	if c.DNI != "" {
		keys = append(keys, uniqueKey("customer", entities.IdentifierDNI.String(), c.DNI))
	}
	if c.Email != "" {
		keys = append(keys, uniqueKey("customer", entities.IdentifierEmail.String(), c.Email))
	}
	return keys
}

func toCustomerItem(c entities.Customer) customerItem {
	return customerItem{
		ID:          c.ID,
		DNI:         c.DNI,
		Email:       c.Email,
		Phone:       c.Phone,
		Name:        c.Name,
		IsAnonymous: c.IsAnonymous,
		CompletedAt: formatOptionalTime(c.CompletedAt),
		Metadata:    c.Metadata,
		CreatedAt:   formatItemTime(c.CreatedAt),
		UpdatedAt:   formatItemTime(c.UpdatedAt),
	}
}

func fromCustomerItem(it customerItem) entities.Customer {
	return entities.Customer{
		ID:          it.ID,
		DNI:         it.DNI,
		Email:       it.Email,
		Phone:       it.Phone,
		Name:        it.Name,
		IsAnonymous: it.IsAnonymous,
		CompletedAt: parseOptionalTime(it.CompletedAt),
		Metadata:    it.Metadata,
		CreatedAt:   parseItemTime(it.CreatedAt),
		UpdatedAt:   parseItemTime(it.UpdatedAt),
	}
}
