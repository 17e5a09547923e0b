package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fieldservice_quotes/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paymentsTable = "quote_payments_test"

func samplePayment(id, quoteID string, at time.Time) entities.QuotePayment {
	raw := json.RawMessage(`{"id":"` + id + `","status":"approved"}`)
	return entities.QuotePayment{
		ID:                 id,
		QuoteID:            quoteID,
		Date:               at,
		Status:             entities.PaymentStatusApproved,
		Amount:             decimal.RequireFromString("150.25"),
		ProviderPayloadRaw: raw,
		ProviderPayload:    map[string]interface{}{"id": id, "status": "approved"},
	}
}

func TestQuotePaymentDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewQuotePaymentDynamoRepository(newMockDynamo(), paymentsTable)
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	_, err := repo.Create(ctx, samplePayment("p-1", "q-1", at))
	require.NoError(t, err)
	_, err = repo.Create(ctx, samplePayment("p-2", "q-1", at.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, samplePayment("p-3", "q-2", at))
	require.NoError(t, err)

	_, err = repo.Create(ctx, samplePayment("p-1", "q-1", at))
	assert.ErrorIs(t, err, ErrPaymentAlreadyExists)

	got, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", got.QuoteID)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, got.Date.Equal(at))
	assert.JSONEq(t, `{"id":"p-1","status":"approved"}`, string(got.ProviderPayloadRaw))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	list, err := repo.ListByQuoteID(ctx, "q-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := repo.ListByQuoteID(ctx, "q-9")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestQuotePaymentMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewQuotePaymentMemoryRepository()
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	_, err := repo.Create(ctx, samplePayment("p-2", "q-1", at.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, samplePayment("p-1", "q-1", at))
	require.NoError(t, err)
	_, err = repo.Create(ctx, samplePayment("p-1", "q-1", at))
	assert.ErrorIs(t, err, ErrPaymentAlreadyExists)

	list, err := repo.ListByQuoteID(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-1", list[0].ID)
}

func TestQuotePaymentDynamoRepository_CorruptRowsSurfaceErrors(t *testing.T) {
	for _, attr := range []string{"amount", "date"} {
		t.Run(attr, func(t *testing.T) {
			ctx := context.Background()
			ddb := newMockDynamo()
			repo := NewQuotePaymentDynamoRepository(ddb, paymentsTable)
			_, err := repo.Create(ctx, samplePayment("p-1", "q-1", time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)))
			require.NoError(t, err)

			ddb.tables[paymentsTable]["p-1"][attr] = &types.AttributeValueMemberS{Value: "garbage"}

			_, err = repo.GetByID(ctx, "p-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), attr)

			_, err = repo.ListByQuoteID(ctx, "q-1")
			assert.Error(t, err)
		})
	}
}
