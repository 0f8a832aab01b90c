package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"cotizador_seguros/internal/domain/entities"
	"cotizador_seguros/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	conversationIDIndex    = "conversation_id-index"
	generationReadAttempts = 3
)

type riskSnapshotItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id,omitempty"`
	VehicleID  string `dynamodbav:"vehicle_id,omitempty"`
	Plate      string `dynamodbav:"patente"`
	Make       string `dynamodbav:"marca"`
	Model      string `dynamodbav:"modelo"`
	Version    string `dynamodbav:"version"`
	Year       int    `dynamodbav:"year"`
	Fuel       string `dynamodbav:"combustible"`
	Usage      string `dynamodbav:"uso"`
	PostalCode string `dynamodbav:"codigo_postal"`
	DNI        string `dynamodbav:"dni,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
}

type quoteItem struct {
	ID             string `dynamodbav:"id"`
	RiskSnapshotID string `dynamodbav:"risk_snapshot_id"`
	ConversationID string `dynamodbav:"conversation_id,omitempty"`
	Status         string `dynamodbav:"status"`
	ExternalRefID  string `dynamodbav:"external_ref_id,omitempty"`
	RawResponse    string `dynamodbav:"raw_response,omitempty"`
	Metadata       string `dynamodbav:"metadata,omitempty"`
	ExpiresAt      string `dynamodbav:"expires_at,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`

	// AlternativeIDs keys the current alternative generation; written in the
	// same transaction as the alternatives themselves.
	AlternativeIDs []string `dynamodbav:"alternative_ids,omitempty"`
}

type quoteAlternativeItem struct {
	QuoteID         string            `dynamodbav:"quote_id"`
	ID              string            `dynamodbav:"id"`
	ExternalCode    string            `dynamodbav:"external_code"`
	ExternalQuoteID string            `dynamodbav:"external_quote_id"`
	Insurer         string            `dynamodbav:"aseguradora"`
	Description     string            `dynamodbav:"descripcion"`
	PlanCode        string            `dynamodbav:"titulo"`
	Grade           string            `dynamodbav:"normalized_grade"`
	Price           string            `dynamodbav:"precio"`
	Currency        string            `dynamodbav:"moneda"`
	MarketingTitle  string            `dynamodbav:"marketing_title,omitempty"`
	SumInsuredText  string            `dynamodbav:"sum_insured_text,omitempty"`
	FeatureTags     []string          `dynamodbav:"features_tags,omitempty"`
	FullDetails     map[string]string `dynamodbav:"full_details,omitempty"`
	CreatedAt       string            `dynamodbav:"created_at"`
}

// QuoteDynamoRepository persists quotes, risk snapshots and alternatives in
// DynamoDB.
//
// Table requirements:
//   - risk_snapshots PK: id
//   - quotes PK: id; GSI conversation_id-index (PK conversation_id)
//   - quote_alternatives PK: quote_id, SK: id
//
// Replacing an alternative set is one TransactWriteItems call, which bounds a
// generation to maxTransactItems items (old deletes + header + new puts).
// Readers fetch the header and the generation it names in one
// TransactGetItems call, so they never observe a mix of two generations.
type QuoteDynamoRepository struct {
	ddb    *dynamodb.Client
	tables DynamoTables
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tables DynamoTables) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tables: tables.WithDefaults()}
}

func (r *QuoteDynamoRepository) CreatePending(ctx context.Context, snapshot entities.RiskSnapshot, q entities.Quote) (entities.Quote, error) {
	q.RiskSnapshotID = snapshot.ID
	q.Status = entities.QuoteStatusPending

	snapAV, err := attributevalue.MarshalMap(toRiskSnapshotItem(snapshot))
	if err != nil {
		return entities.Quote{}, err
	}
	quoteAV, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	notExists := map[string]string{"#id": "id"}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tables.RiskSnapshots),
				Item:                     snapAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: notExists,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Quotes),
				Item:                     quoteAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: notExists,
			}},
		},
	})
	if err != nil {
		if canceledReasons(err) != nil {
			return entities.Quote{}, interfaces.ErrDuplicateKey
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	ok, err := getItemByID(ctx, r.ddb, r.tables.Quotes, id, &it)
	if err != nil || !ok {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) GetSnapshot(ctx context.Context, id string) (entities.RiskSnapshot, error) {
	var it riskSnapshotItem
	ok, err := getItemByID(ctx, r.ddb, r.tables.RiskSnapshots, id, &it)
	if err != nil || !ok {
		return entities.RiskSnapshot{}, err
	}
	return fromRiskSnapshotItem(it), nil
}

func (r *QuoteDynamoRepository) SaveSimulationResults(ctx context.Context, quoteID string, result entities.SimulationResult, expiresAt time.Time) (entities.Quote, error) {
	current, err := r.GetByID(ctx, quoteID)
	if err != nil || current.ID == "" {
		return entities.Quote{}, err
	}
	previous, err := r.alternativeItems(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	total := len(previous) + 1 + len(result.Alternatives)
	if total > maxTransactItems {
		return entities.Quote{}, fmt.Errorf("quote %s: %d alternatives exceed a single transaction", quoteID, len(result.Alternatives))
	}

	now := time.Now()
	ids := make([]string, 0, len(result.Alternatives))
	puts := make([]types.TransactWriteItem, 0, len(result.Alternatives))
	for _, a := range result.Alternatives {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.QuoteID = quoteID
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		av, err := attributevalue.MarshalMap(toQuoteAlternativeItem(a))
		if err != nil {
			return entities.Quote{}, err
		}
		ids = append(ids, a.ID)
		puts = append(puts, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(r.tables.QuoteAlternatives),
			Item:      av,
		}})
	}
	idsAV, err := attributevalue.Marshal(ids)
	if err != nil {
		return entities.Quote{}, err
	}

	items := make([]types.TransactWriteItem, 0, total)
	for _, p := range previous {
		items = append(items, types.TransactWriteItem{Delete: &types.Delete{
			TableName: aws.String(r.tables.QuoteAlternatives),
			Key: map[string]types.AttributeValue{
				"quote_id": &types.AttributeValueMemberS{Value: p.QuoteID},
				"id":       &types.AttributeValueMemberS{Value: p.ID},
			},
		}})
	}
	items = append(items, types.TransactWriteItem{Update: &types.Update{
		TableName: aws.String(r.tables.Quotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #external_ref_id = :ref, #raw_response = :raw, #expires_at = :expires_at, #updated_at = :now, #alternative_ids = :alternative_ids"),
		ExpressionAttributeNames: map[string]string{
			"#id":              "id",
			"#status":          "status",
			"#external_ref_id": "external_ref_id",
			"#raw_response":    "raw_response",
			"#expires_at":      "expires_at",
			"#updated_at":      "updated_at",
			"#alternative_ids": "alternative_ids",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":          &types.AttributeValueMemberS{Value: string(entities.QuoteStatusProcessed)},
			":ref":             &types.AttributeValueMemberS{Value: result.TaskID},
			":raw":             &types.AttributeValueMemberS{Value: string(result.Raw)},
			":expires_at":      &types.AttributeValueMemberS{Value: formatItemTime(expiresAt)},
			":now":             &types.AttributeValueMemberS{Value: formatItemTime(now)},
			":alternative_ids": idsAV,
		},
	}})
	items = append(items, puts...)

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		if conditionFailedAt(canceledReasons(err), len(previous)) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	return r.GetByID(ctx, quoteID)
}

func (r *QuoteDynamoRepository) MarkFailed(ctx context.Context, quoteID string, reason string, attempts int, at time.Time) (entities.Quote, error) {
	current, err := r.GetByID(ctx, quoteID)
	if err != nil || current.ID == "" {
		return entities.Quote{}, err
	}
	meta := current.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	meta[entities.QuoteMetadataError] = reason
	meta[entities.QuoteMetadataAttempts] = attempts
	meta[entities.QuoteMetadataFailedAt] = at.UTC().Format(time.RFC3339)
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Quotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #metadata = :metadata, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#metadata":   "metadata",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusFailed)},
			":metadata": &types.AttributeValueMemberS{Value: string(rawMeta)},
			":now":      &types.AttributeValueMemberS{Value: formatItemTime(at)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// ListAlternatives returns the current alternative generation ordered by
// price. A generation replaced between the header read and the
// transactional read is retried.
func (r *QuoteDynamoRepository) ListAlternatives(ctx context.Context, quoteID string) ([]entities.QuoteAlternative, error) {
	for attempt := 0; attempt < generationReadAttempts; attempt++ {
		var head quoteItem
		ok, err := getItemByID(ctx, r.ddb, r.tables.Quotes, quoteID, &head)
		if err != nil || !ok {
			return nil, err
		}
		if len(head.AlternativeIDs) == 0 {
			return []entities.QuoteAlternative{}, nil
		}

		out, err := r.ddb.TransactGetItems(ctx, &dynamodb.TransactGetItemsInput{
			TransactItems: r.generationGets(quoteID, head.AlternativeIDs),
		})
		if err != nil {
			// conflicts with an in-flight SaveSimulationResults cancel the read
			if canceledReasons(err) != nil {
				continue
			}
			return nil, err
		}
		items, ok, err := decodeAlternativeGeneration(head.AlternativeIDs, out.Responses)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		alts := make([]entities.QuoteAlternative, len(items))
		for i, it := range items {
			alts[i] = fromQuoteAlternativeItem(it)
		}
		sort.SliceStable(alts, func(i, j int) bool { return alts[i].Price.LessThan(alts[j].Price) })
		return alts, nil
	}
	return nil, fmt.Errorf("quote %s: alternatives kept changing during read", quoteID)
}

// generationGets reads the quote header first, then every alternative it
// names.
func (r *QuoteDynamoRepository) generationGets(quoteID string, ids []string) []types.TransactGetItem {
	gets := make([]types.TransactGetItem, 0, len(ids)+1)
	gets = append(gets, types.TransactGetItem{Get: &types.Get{
		TableName: aws.String(r.tables.Quotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ProjectionExpression:     aws.String("#alternative_ids"),
		ExpressionAttributeNames: map[string]string{"#alternative_ids": "alternative_ids"},
	}})
	for _, id := range ids {
		gets = append(gets, types.TransactGetItem{Get: &types.Get{
			TableName: aws.String(r.tables.QuoteAlternatives),
			Key: map[string]types.AttributeValue{
				"quote_id": &types.AttributeValueMemberS{Value: quoteID},
				"id":       &types.AttributeValueMemberS{Value: id},
			},
		}})
	}
	return gets
}

// decodeAlternativeGeneration checks that responses (header first) still
// describe the generation want. ok is false when a newer generation was
// committed after the header read.
func decodeAlternativeGeneration(want []string, responses []types.ItemResponse) ([]quoteAlternativeItem, bool, error) {
	if len(responses) != len(want)+1 {
		return nil, false, nil
	}
	var head quoteItem
	if err := attributevalue.UnmarshalMap(responses[0].Item, &head); err != nil {
		return nil, false, err
	}
	if !slices.Equal(head.AlternativeIDs, want) {
		return nil, false, nil
	}

	items := make([]quoteAlternativeItem, 0, len(want))
	for _, resp := range responses[1:] {
		if len(resp.Item) == 0 {
			return nil, false, nil
		}
		var it quoteAlternativeItem
		if err := attributevalue.UnmarshalMap(resp.Item, &it); err != nil {
			return nil, false, err
		}
		items = append(items, it)
	}
	return items, true, nil
}

func (r *QuoteDynamoRepository) alternativeItems(ctx context.Context, quoteID string) ([]quoteAlternativeItem, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.QuoteAlternatives),
		KeyConditionExpression: aws.String("#quote_id = :quote_id"),
		ExpressionAttributeNames: map[string]string{
			"#quote_id": "quote_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":quote_id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var items []quoteAlternativeItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *QuoteDynamoRepository) ListByConversation(ctx context.Context, conversationID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Quotes),
		IndexName:              aws.String(conversationIDIndex),
		KeyConditionExpression: aws.String("#conversation_id = :conversation_id"),
		ExpressionAttributeNames: map[string]string{
			"#conversation_id": "conversation_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		},
	})
	if err != nil {
		return nil, err
	}
	var items []quoteItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	return quoteItemsToDomain(items), nil
}

// ListPendingBefore scans the quotes table. It only backs the periodic
// sweeper, which tolerates the cost.
func (r *QuoteDynamoRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]entities.Quote, error) {
	var items []quoteItem
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tables.Quotes),
		FilterExpression: aws.String("#status = :pending AND #created_at < :before"),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#created_at": "created_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
			":before":  &types.AttributeValueMemberS{Value: formatItemTime(before)},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return quoteItemsToDomain(items), nil
}

func quoteItemsToDomain(items []quoteItem) []entities.Quote {
	out := make([]entities.Quote, len(items))
	for i, it := range items {
		out[i] = fromQuoteItem(it)
	}
	return out
}

func toRiskSnapshotItem(s entities.RiskSnapshot) riskSnapshotItem {
	return riskSnapshotItem{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		VehicleID:  s.VehicleID,
		Plate:      s.Plate,
		Make:       s.Make,
		Model:      s.Model,
		Version:    s.Version,
		Year:       s.Year,
		Fuel:       string(s.Fuel),
		Usage:      string(s.Usage),
		PostalCode: s.PostalCode,
		DNI:        s.DNI,
		CreatedAt:  formatItemTime(s.CreatedAt),
	}
}

func fromRiskSnapshotItem(it riskSnapshotItem) entities.RiskSnapshot {
	return entities.RiskSnapshot{
		ID:         it.ID,
		CustomerID: it.CustomerID,
		VehicleID:  it.VehicleID,
		Plate:      it.Plate,
		Make:       it.Make,
		Model:      it.Model,
		Version:    it.Version,
		Year:       it.Year,
		Fuel:       entities.Fuel(it.Fuel),
		Usage:      entities.VehicleUsage(it.Usage),
		PostalCode: it.PostalCode,
		DNI:        it.DNI,
		CreatedAt:  parseItemTime(it.CreatedAt),
	}
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:             q.ID,
		RiskSnapshotID: q.RiskSnapshotID,
		ConversationID: q.ConversationID,
		Status:         string(q.Status),
		ExternalRefID:  q.ExternalRefID,
		RawResponse:    string(q.RawResponse),
		ExpiresAt:      formatOptionalTime(q.ExpiresAt),
		CreatedAt:      formatItemTime(q.CreatedAt),
		UpdatedAt:      formatItemTime(q.UpdatedAt),
	}
	if len(q.Metadata) > 0 {
		raw, _ := json.Marshal(q.Metadata)
		it.Metadata = string(raw)
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:             it.ID,
		RiskSnapshotID: it.RiskSnapshotID,
		ConversationID: it.ConversationID,
		Status:         entities.QuoteStatus(it.Status),
		ExternalRefID:  it.ExternalRefID,
		ExpiresAt:      parseOptionalTime(it.ExpiresAt),
		CreatedAt:      parseItemTime(it.CreatedAt),
		UpdatedAt:      parseItemTime(it.UpdatedAt),
	}
	if it.RawResponse != "" {
		q.RawResponse = json.RawMessage(it.RawResponse)
	}
	if it.Metadata != "" {
		_ = json.Unmarshal([]byte(it.Metadata), &q.Metadata)
	}
	return q
}

func toQuoteAlternativeItem(a entities.QuoteAlternative) quoteAlternativeItem {
	return quoteAlternativeItem{
		QuoteID:         a.QuoteID,
		ID:              a.ID,
		ExternalCode:    a.ExternalCode,
		ExternalQuoteID: a.ExternalQuoteID,
		Insurer:         a.Insurer,
		Description:     a.Description,
		PlanCode:        a.PlanCode,
		Grade:           string(a.Grade),
		Price:           a.Price.StringFixed(2),
		Currency:        a.Currency,
		MarketingTitle:  a.MarketingTitle,
		SumInsuredText:  a.SumInsuredText,
		FeatureTags:     a.FeatureTags,
		FullDetails:     a.FullDetails,
		CreatedAt:       formatItemTime(a.CreatedAt),
	}
}

func fromQuoteAlternativeItem(it quoteAlternativeItem) entities.QuoteAlternative {
	price, _ := decimal.NewFromString(it.Price)
	return entities.QuoteAlternative{
		ID:              it.ID,
		QuoteID:         it.QuoteID,
		ExternalCode:    it.ExternalCode,
		ExternalQuoteID: it.ExternalQuoteID,
		Insurer:         it.Insurer,
		Description:     it.Description,
		PlanCode:        it.PlanCode,
		Grade:           entities.CoverageGrade(it.Grade),
		Price:           price,
		Currency:        it.Currency,
		MarketingTitle:  it.MarketingTitle,
		SumInsuredText:  it.SumInsuredText,
		FeatureTags:     it.FeatureTags,
		FullDetails:     it.FullDetails,
		CreatedAt:       parseItemTime(it.CreatedAt),
	}
}
