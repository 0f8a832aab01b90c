package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const customerIDIndex = "customer_id-index"

type vehicleItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id,omitempty"`
	Plate      string `dynamodbav:"patente"`
	Make       string `dynamodbav:"marca,omitempty"`
	Model      string `dynamodbav:"modelo,omitempty"`
	Version    string `dynamodbav:"version,omitempty"`
	Year       int    `dynamodbav:"year,omitempty"`
	Fuel       string `dynamodbav:"combustible,omitempty"`
	Usage      string `dynamodbav:"uso"`
	PostalCode string `dynamodbav:"codigo_postal,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// VehicleDynamoRepository persists vehicles in DynamoDB.
//
// Table requirements:
//   - vehicles PK: id (string); GSI customer_id-index (PK customer_id)
//   - unique_keys holds one item per plate
type VehicleDynamoRepository struct {
	ddb    *dynamodb.Client
	tables DynamoTables
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb *dynamodb.Client, tables DynamoTables) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{ddb: ddb, tables: tables.WithDefaults()}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	if v.Usage == "" {
		v.Usage = entities.UsageParticular
	}
	av, err := attributevalue.MarshalMap(toVehicleItem(v))
	if err != nil {
		return entities.Vehicle{}, err
	}
	plateKey, err := uniqueKeyPut(r.tables.UniqueKeys, uniqueKey("vehicle", "plate", v.Plate), v.ID)
	if err != nil {
		return entities.Vehicle{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			plateKey,
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Vehicles),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if canceledReasons(err) != nil {
			return entities.Vehicle{}, interfaces.ErrDuplicateKey
		}
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	var it vehicleItem
	ok, err := getItemByID(ctx, r.ddb, r.tables.Vehicles, id, &it)
	if err != nil || !ok {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) FindByPlate(ctx context.Context, plate string) (entities.Vehicle, error) {
	owner, err := lookupUniqueOwner(ctx, r.ddb, r.tables.UniqueKeys, uniqueKey("vehicle", "plate", plate))
	if err != nil || owner == "" {
		return entities.Vehicle{}, err
	}
	return r.GetByID(ctx, owner)
}

func (r *VehicleDynamoRepository) Revise(ctx context.Context, id string, rev entities.VehicleRevision) (entities.Vehicle, error) {
	expr, names, vals := vehicleRevisionUpdate(rev, time.Now())

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Vehicles),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: vals,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Vehicle{}, nil
		}
		return entities.Vehicle{}, err
	}
	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

// vehicleRevisionUpdate builds the UpdateItem expression for rev.
func vehicleRevisionUpdate(rev entities.VehicleRevision, now time.Time) (string, map[string]string, map[string]types.AttributeValue) {
	sets := []string{"#updated_at = :updated_at"}
	names := map[string]string{
		"#updated_at":  "updated_at",
		"#customer_id": "customer_id",
		"#id":          "id",
	}
	vals := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: formatItemTime(now)},
	}
	set := func(attr string, v types.AttributeValue) {
		names["#"+attr] = attr
		vals[":"+attr] = v
		sets = append(sets, "#"+attr+" = :"+attr)
	}
	// blank attributes are omitted on write, so if_not_exists fills only
	// chassis facts that were never recorded
	fill := func(attr string, v types.AttributeValue) {
		names["#"+attr] = attr
		vals[":"+attr] = v
		sets = append(sets, "#"+attr+" = if_not_exists(#"+attr+", :"+attr+")")
	}

	if rev.PostalCode != "" {
		set("codigo_postal", &types.AttributeValueMemberS{Value: rev.PostalCode})
	}
	if rev.Version != "" {
		set("version", &types.AttributeValueMemberS{Value: rev.Version})
	}
	if rev.Fuel != nil {
		set("combustible", &types.AttributeValueMemberS{Value: string(*rev.Fuel)})
	}
	if rev.Make != "" {
		fill("marca", &types.AttributeValueMemberS{Value: rev.Make})
	}
	if rev.Model != "" {
		fill("modelo", &types.AttributeValueMemberS{Value: rev.Model})
	}
	if rev.Year > 0 {
		fill("year", &types.AttributeValueMemberN{Value: strconv.Itoa(rev.Year)})
	}

	expr := "SET " + strings.Join(sets, ", ")
	// an empty GSI key is rejected, so an unowned vehicle drops the attribute
	if rev.CustomerID != "" {
		expr += ", #customer_id = :customer_id"
		vals[":customer_id"] = &types.AttributeValueMemberS{Value: rev.CustomerID}
	} else {
		expr += " REMOVE #customer_id"
	}
	return expr, names, vals
}

func (r *VehicleDynamoRepository) ListByCustomer(ctx context.Context, customerID string) ([]entities.Vehicle, error) {
	var items []vehicleItem
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Vehicles),
		IndexName:              aws.String(customerIDIndex),
		KeyConditionExpression: aws.String("#customer_id = :customer_id"),
		ExpressionAttributeNames: map[string]string{
			"#customer_id": "customer_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":customer_id": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []vehicleItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	out := make([]entities.Vehicle, len(items))
	for i, it := range items {
		out[i] = fromVehicleItem(it)
	}
	return out, nil
}

func toVehicleItem(v entities.Vehicle) vehicleItem {
	return vehicleItem{
		ID:         v.ID,
		CustomerID: v.CustomerID,
		Plate:      v.Plate,
		Make:       v.Make,
		Model:      v.Model,
		Version:    v.Version,
		Year:       v.Year,
		Fuel:       string(v.Fuel),
		Usage:      string(v.Usage),
		PostalCode: v.PostalCode,
		CreatedAt:  formatItemTime(v.CreatedAt),
		UpdatedAt:  formatItemTime(v.UpdatedAt),
	}
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		ID:         it.ID,
		CustomerID: it.CustomerID,
		Plate:      it.Plate,
		Make:       it.Make,
		Model:      it.Model,
		Version:    it.Version,
		Year:       it.Year,
		Fuel:       entities.Fuel(it.Fuel),
		Usage:      entities.VehicleUsage(it.Usage),
		PostalCode: it.PostalCode,
		CreatedAt:  parseItemTime(it.CreatedAt),
		UpdatedAt:  parseItemTime(it.UpdatedAt),
	}
}
