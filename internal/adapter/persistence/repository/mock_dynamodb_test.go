package repository

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory table store for repository tests. It
// understands the key shapes used here (quote_id+sk, or id), the
// attribute_exists/attribute_not_exists conditions and plain SET/REMOVE
// update expressions.
type mockDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// failTransact is returned by every TransactWriteItems call, or only by
	// call number failTransactOn when that is set.
	failTransact   error
	failTransactOn int
	transactions   int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) table(name *string) map[string]map[string]types.AttributeValue {
	t, ok := m.tables[*name]
	if !ok {
		t = map[string]map[string]types.AttributeValue{}
		m.tables[*name] = t
	}
	return t
}

func keyOf(item map[string]types.AttributeValue) string {
	if sk, ok := item["sk"]; ok {
		return strAttr(item["quote_id"]) + "|" + strAttr(sk)
	}
	return strAttr(item["id"])
}

func strAttr(v types.AttributeValue) string {
	if s, ok := v.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func conditionHolds(cond *string, exists bool) bool {
	if cond == nil {
		return true
	}
	switch {
	case strings.HasPrefix(*cond, "attribute_not_exists"):
		return !exists
	case strings.HasPrefix(*cond, "attribute_exists"):
		return exists
	}
	return true
}

func (m *mockDynamo) PutItem(_ context.Context, params *dyn.PutItemInput, _ ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.table(params.TableName)
	k := keyOf(params.Item)
	_, exists := t[k]
	if !conditionHolds(params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	t[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(_ context.Context, params *dyn.GetItemInput, _ ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.table(params.TableName)[keyOf(params.Key)]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

var assignRe = regexp.MustCompile(`^(#\w+)\s*=\s*(:\w+)$`)

func (m *mockDynamo) UpdateItem(_ context.Context, params *dyn.UpdateItemInput, _ ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.table(params.TableName)
	k := keyOf(params.Key)
	item, exists := t[k]
	if !conditionHolds(params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if !exists {
		return nil, errors.New("item not found")
	}

	updated := map[string]types.AttributeValue{}
	for a, v := range item {
		updated[a] = v
	}
	expr := *params.UpdateExpression
	setPart, removePart := expr, ""
	if i := strings.Index(expr, " REMOVE "); i >= 0 {
		setPart, removePart = expr[:i], expr[i+len(" REMOVE "):]
	}
	setPart = strings.TrimPrefix(setPart, "SET ")
	for _, clause := range strings.Split(setPart, ",") {
		match := assignRe.FindStringSubmatch(strings.TrimSpace(clause))
		if match == nil {
			return nil, errors.New("unsupported update clause: " + clause)
		}
		updated[params.ExpressionAttributeNames[match[1]]] = params.ExpressionAttributeValues[match[2]]
	}
	if removePart != "" {
		for _, name := range strings.Split(removePart, ",") {
			delete(updated, params.ExpressionAttributeNames[strings.TrimSpace(name)])
		}
	}
	t[k] = updated
	return &dyn.UpdateItemOutput{Attributes: updated}, nil
}

func (m *mockDynamo) DeleteItem(_ context.Context, params *dyn.DeleteItemInput, _ ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.table(params.TableName)
	k := keyOf(params.Key)
	_, exists := t[k]
	if !conditionHolds(params.ConditionExpression, exists) {
		return nil, &types.ConditionalCheckFailedException{}
	}
	delete(t, k)
	return &dyn.DeleteItemOutput{}, nil
}

// Query supports equality on quote_id, against the table or the
// quote_id-index of the payments table.
func (m *mockDynamo) Query(_ context.Context, params *dyn.QueryInput, _ ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := strAttr(params.ExpressionAttributeValues[":qid"])
	var out []map[string]types.AttributeValue
	for _, k := range m.sortedKeys(params.TableName) {
		item := m.tables[*params.TableName][k]
		if strAttr(item["quote_id"]) == want {
			out = append(out, item)
		}
	}
	return &dyn.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (m *mockDynamo) Scan(_ context.Context, params *dyn.ScanInput, _ ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []map[string]types.AttributeValue
	for _, k := range m.sortedKeys(params.TableName) {
		out = append(out, m.tables[*params.TableName][k])
	}
	return &dyn.ScanOutput{Items: out, Count: int32(len(out))}, nil
}

// TransactWriteItems checks every condition before applying any write.
func (m *mockDynamo) TransactWriteItems(_ context.Context, params *dyn.TransactWriteItemsInput, _ ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions++
	if m.failTransact != nil && (m.failTransactOn == 0 || m.failTransactOn == m.transactions) {
		return nil, m.failTransact
	}

	for _, it := range params.TransactItems {
		var (
			name *string
			key  string
			cond *string
		)
		switch {
		case it.Put != nil:
			name, key, cond = it.Put.TableName, keyOf(it.Put.Item), it.Put.ConditionExpression
		case it.Delete != nil:
			name, key, cond = it.Delete.TableName, keyOf(it.Delete.Key), it.Delete.ConditionExpression
		case it.ConditionCheck != nil:
			name, key, cond = it.ConditionCheck.TableName, keyOf(it.ConditionCheck.Key), it.ConditionCheck.ConditionExpression
		default:
			continue
		}
		_, exists := m.table(name)[key]
		if !conditionHolds(cond, exists) {
			return nil, &types.TransactionCanceledException{}
		}
	}

	for _, it := range params.TransactItems {
		switch {
		case it.Put != nil:
			m.table(it.Put.TableName)[keyOf(it.Put.Item)] = it.Put.Item
		case it.Delete != nil:
			delete(m.table(it.Delete.TableName), keyOf(it.Delete.Key))
		}
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}

func (m *mockDynamo) sortedKeys(name *string) []string {
	t := m.table(name)
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockDynamo) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[name])
}
