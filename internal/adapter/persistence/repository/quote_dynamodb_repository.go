package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/infrastructure/database"
	"fieldservice_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	headerSortKey  = "HEADER"
	itemSortPrefix = "ITEM#"

	entityQuote    = "quote"
	entityLineItem = "line_item"

	// DynamoDB caps a transaction at 100 actions.
	maxTransactItems = 100
)

var ErrQuoteAlreadyExists = errors.New("quote already exists")

// quoteRecord is one row of the quotes table: either the header
// (sk = HEADER) or a line item (sk = ITEM#<item id>).
type quoteRecord struct {
	QuoteID string `dynamodbav:"quote_id"`
	SK      string `dynamodbav:"sk"`
	Entity  string `dynamodbav:"entity"`

	ClientID           string `dynamodbav:"client_id,omitempty"`
	OriginatingOrderID string `dynamodbav:"originating_order_id,omitempty"`
	Status             string `dynamodbav:"status,omitempty"`
	ValidUntil         string `dynamodbav:"valid_until,omitempty"`
	Notes              string `dynamodbav:"notes,omitempty"`
	CreatedAt          string `dynamodbav:"created_at,omitempty"`
	UpdatedAt          string `dynamodbav:"updated_at,omitempty"`

	ItemID        string `dynamodbav:"item_id,omitempty"`
	Kind          string `dynamodbav:"kind,omitempty"`
	PartID        string `dynamodbav:"part_id,omitempty"`
	ServiceTypeID string `dynamodbav:"service_type_id,omitempty"`
	Description   string `dynamodbav:"description,omitempty"`
	Quantity      int64  `dynamodbav:"quantity,omitempty"`
	UnitPrice     string `dynamodbav:"unit_price,omitempty"`
	Position      int    `dynamodbav:"position"`
}

// QuoteDynamoRepository persists quotes and their line items in a single
// DynamoDB table.
//
// Table requirements:
//   - PK: quote_id (string)
//   - SK: sk (string)
//
// The quote and its items share a partition, so a quote is read with one
// Query and deleted together with its items. No total is stored.
type QuoteDynamoRepository struct {
	ddb       database.DynamoDBAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb database.DynamoDBAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if len(q.LineItems)+1 > maxTransactItems {
		return entities.Quote{}, fmt.Errorf("create quote: %d items exceed one transaction", len(q.LineItems))
	}

	header, err := attributevalue.MarshalMap(toHeaderRecord(q))
	if err != nil {
		return entities.Quote{}, err
	}
	actions := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     header,
			ConditionExpression:      aws.String("attribute_not_exists(#qid)"),
			ExpressionAttributeNames: map[string]string{"#qid": "quote_id"},
		},
	}}
	for _, it := range q.LineItems {
		av, err := attributevalue.MarshalMap(toItemRecord(it))
		if err != nil {
			return entities.Quote{}, err
		}
		actions = append(actions, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(r.tableName), Item: av},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return entities.Quote{}, ErrQuoteAlreadyExists
		}
		return entities.Quote{}, fmt.Errorf("create quote: %w", err)
	}

	created := q
	if created.LineItems == nil {
		created.LineItems = []entities.LineItem{}
	}
	return created, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	records, err := r.queryPartition(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	quotes, err := assembleQuotes(records)
	if err != nil {
		return entities.Quote{}, err
	}
	if len(quotes) == 0 {
		return entities.Quote{}, nil
	}
	return quotes[0], nil
}

// List scans the table. Quotes are a back-office data set, small enough for a
// scan; filters are applied after grouping rows into quotes.
func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	var records []quoteRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
			ConsistentRead:    aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("scan quotes: %w", err)
		}
		page, err := unmarshalRecords(out.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	all, err := assembleQuotes(records)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(all))
	for _, q := range all {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sortQuotes(out)
	return out, nil
}

func (r *QuoteDynamoRepository) UpdateHeader(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	return r.update(ctx, q.ID, func() (string, map[string]types.AttributeValue, map[string]string) {
		set := []string{
			"#client_id = :client_id",
			"#status = :status",
			"#updated_at = :updated_at",
		}
		var remove []string
		vals := map[string]types.AttributeValue{
			":client_id":  &types.AttributeValueMemberS{Value: q.ClientID},
			":status":     &types.AttributeValueMemberS{Value: string(q.Status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(q.UpdatedAt)},
		}
		names := map[string]string{
			"#client_id":  "client_id",
			"#status":     "status",
			"#updated_at": "updated_at",
			"#order_id":   "originating_order_id",
			"#valid":      "valid_until",
			"#notes":      "notes",
		}

		if q.OriginatingOrderID != nil {
			set = append(set, "#order_id = :order_id")
			vals[":order_id"] = &types.AttributeValueMemberS{Value: *q.OriginatingOrderID}
		} else {
			remove = append(remove, "#order_id")
		}
		if q.ValidUntil != nil {
			set = append(set, "#valid = :valid")
			vals[":valid"] = &types.AttributeValueMemberS{Value: formatTime(*q.ValidUntil)}
		} else {
			remove = append(remove, "#valid")
		}
		if q.Notes != "" {
			set = append(set, "#notes = :notes")
			vals[":notes"] = &types.AttributeValueMemberS{Value: q.Notes}
		} else {
			remove = append(remove, "#notes")
		}

		expr := "SET " + strings.Join(set, ", ")
		if len(remove) > 0 {
			expr += " REMOVE " + strings.Join(remove, ", ")
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	updateExpr, values, names := build()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       recordKey(id, headerSortKey),
		ConditionExpression:       aws.String("attribute_exists(#qid)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#qid": "quote_id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, fmt.Errorf("update quote: %w", err)
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var rec quoteRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.Quote{}, err
	}
	return fromHeaderRecord(rec)
}

// Delete removes every item and then the header. Item batches go first and
// the header is removed in the last transaction, so a failed batch leaves the
// quote readable and a repeated Delete finishes the job.
func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	records, err := r.queryPartition(ctx, id)
	if err != nil {
		return false, err
	}
	hasHeader := false
	var itemKeys []string
	for _, rec := range records {
		if rec.SK == headerSortKey {
			hasHeader = true
			continue
		}
		itemKeys = append(itemKeys, rec.SK)
	}
	if !hasHeader {
		return false, nil
	}

	itemDelete := func(sk string) types.TransactWriteItem {
		return types.TransactWriteItem{
			Delete: &types.Delete{TableName: aws.String(r.tableName), Key: recordKey(id, sk)},
		}
	}

	// Full batches leave no room for the header.
	for len(itemKeys) >= maxTransactItems {
		actions := make([]types.TransactWriteItem, 0, maxTransactItems)
		for _, sk := range itemKeys[:maxTransactItems] {
			actions = append(actions, itemDelete(sk))
		}
		if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions}); err != nil {
			return false, fmt.Errorf("delete quote items: %w", err)
		}
		itemKeys = itemKeys[maxTransactItems:]
	}

	actions := make([]types.TransactWriteItem, 0, len(itemKeys)+1)
	for _, sk := range itemKeys {
		actions = append(actions, itemDelete(sk))
	}
	actions = append(actions, types.TransactWriteItem{
		Delete: &types.Delete{
			TableName:                aws.String(r.tableName),
			Key:                      recordKey(id, headerSortKey),
			ConditionExpression:      aws.String("attribute_exists(#qid)"),
			ExpressionAttributeNames: map[string]string{"#qid": "quote_id"},
		},
	})
	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions}); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return false, nil
		}
		return false, fmt.Errorf("delete quote: %w", err)
	}
	return true, nil
}

// PutItem writes an item only while its quote exists. With replace the item
// must already exist, otherwise it must not.
func (r *QuoteDynamoRepository) PutItem(ctx context.Context, item entities.LineItem, replace bool) (bool, error) {
	av, err := attributevalue.MarshalMap(toItemRecord(item))
	if err != nil {
		return false, err
	}
	itemCond := "attribute_not_exists(#sk)"
	if replace {
		itemCond = "attribute_exists(#sk)"
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				ConditionCheck: &types.ConditionCheck{
					TableName:                aws.String(r.tableName),
					Key:                      recordKey(item.QuoteID, headerSortKey),
					ConditionExpression:      aws.String("attribute_exists(#qid)"),
					ExpressionAttributeNames: map[string]string{"#qid": "quote_id"},
				},
			},
			{
				Put: &types.Put{
					TableName:                aws.String(r.tableName),
					Item:                     av,
					ConditionExpression:      aws.String(itemCond),
					ExpressionAttributeNames: map[string]string{"#sk": "sk"},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return false, nil
		}
		return false, fmt.Errorf("put line item: %w", err)
	}
	return true, nil
}

func (r *QuoteDynamoRepository) DeleteItem(ctx context.Context, quoteID, itemID string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      recordKey(quoteID, itemSortPrefix+itemID),
		ConditionExpression:      aws.String("attribute_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{"#sk": "sk"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, fmt.Errorf("delete line item: %w", err)
	}
	return true, nil
}

func (r *QuoteDynamoRepository) queryPartition(ctx context.Context, quoteID string) ([]quoteRecord, error) {
	var records []quoteRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("quote_id = :qid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":qid": &types.AttributeValueMemberS{Value: quoteID},
			},
			ExclusiveStartKey: startKey,
			ConsistentRead:    aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("query quote: %w", err)
		}
		page, err := unmarshalRecords(out.Items)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func unmarshalRecords(items []map[string]types.AttributeValue) ([]quoteRecord, error) {
	out := make([]quoteRecord, 0, len(items))
	for _, raw := range items {
		var rec quoteRecord
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// assembleQuotes groups rows by quote. Item rows without a header row are
// ignored: they are leftovers of an interrupted delete and not reachable.
func assembleQuotes(records []quoteRecord) ([]entities.Quote, error) {
	headers := map[string]entities.Quote{}
	items := map[string][]entities.LineItem{}
	var order []string
	for _, rec := range records {
		switch rec.SK {
		case headerSortKey:
			q, err := fromHeaderRecord(rec)
			if err != nil {
				return nil, err
			}
			headers[rec.QuoteID] = q
			order = append(order, rec.QuoteID)
		default:
			if strings.HasPrefix(rec.SK, itemSortPrefix) {
				it, err := fromItemRecord(rec)
				if err != nil {
					return nil, err
				}
				items[rec.QuoteID] = append(items[rec.QuoteID], it)
			}
		}
	}

	out := make([]entities.Quote, 0, len(order))
	for _, id := range order {
		q := headers[id]
		q.LineItems = items[id]
		if q.LineItems == nil {
			q.LineItems = []entities.LineItem{}
		}
		sortItems(q.LineItems)
		out = append(out, q)
	}
	return out, nil
}

func recordKey(quoteID, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"quote_id": &types.AttributeValueMemberS{Value: quoteID},
		"sk":       &types.AttributeValueMemberS{Value: sk},
	}
}

func toHeaderRecord(q entities.Quote) quoteRecord {
	rec := quoteRecord{
		QuoteID:   q.ID,
		SK:        headerSortKey,
		Entity:    entityQuote,
		ClientID:  q.ClientID,
		Status:    string(q.Status),
		Notes:     q.Notes,
		CreatedAt: formatTime(q.CreatedAt),
		UpdatedAt: formatTime(q.UpdatedAt),
	}
	if q.OriginatingOrderID != nil {
		rec.OriginatingOrderID = *q.OriginatingOrderID
	}
	if q.ValidUntil != nil {
		rec.ValidUntil = formatTime(*q.ValidUntil)
	}
	return rec
}

func fromHeaderRecord(rec quoteRecord) (entities.Quote, error) {
	createdAt, err := parseTime("created_at", rec.CreatedAt)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", rec.QuoteID, err)
	}
	updatedAt, err := parseTime("updated_at", rec.UpdatedAt)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", rec.QuoteID, err)
	}
	q := entities.Quote{
		ID:        rec.QuoteID,
		ClientID:  rec.ClientID,
		Status:    entities.QuoteStatus(rec.Status),
		Notes:     rec.Notes,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if rec.OriginatingOrderID != "" {
		id := rec.OriginatingOrderID
		q.OriginatingOrderID = &id
	}
	if rec.ValidUntil != "" {
		t, err := parseTime("valid_until", rec.ValidUntil)
		if err != nil {
			return entities.Quote{}, fmt.Errorf("quote %s: %w", rec.QuoteID, err)
		}
		q.ValidUntil = &t
	}
	return q, nil
}

func toItemRecord(it entities.LineItem) quoteRecord {
	return quoteRecord{
		QuoteID:       it.QuoteID,
		SK:            itemSortPrefix + it.ID,
		Entity:        entityLineItem,
		ItemID:        it.ID,
		Kind:          string(it.Kind),
		PartID:        it.PartID,
		ServiceTypeID: it.ServiceTypeID,
		Description:   it.Description,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice.String(),
		Position:      it.Position,
	}
}

func fromItemRecord(rec quoteRecord) (entities.LineItem, error) {
	id := rec.ItemID
	if id == "" {
		id = strings.TrimPrefix(rec.SK, itemSortPrefix)
	}
	price, err := decimal.NewFromString(rec.UnitPrice)
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("quote %s item %s: decode unit_price: %w", rec.QuoteID, id, err)
	}
	return entities.LineItem{
		ID:            id,
		QuoteID:       rec.QuoteID,
		Kind:          entities.LineItemKind(rec.Kind),
		PartID:        rec.PartID,
		ServiceTypeID: rec.ServiceTypeID,
		Description:   rec.Description,
		Quantity:      rec.Quantity,
		UnitPrice:     price,
		Position:      rec.Position,
	}, nil
}
