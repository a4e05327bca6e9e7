package exmo

import (
	"context"
	"net/http"
	"testing"
	"time"

	"exmo-trade-terminal/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const openOrdersBody = `{
	"BTC_RUB": [
		{"order_id": "12345", "created": "1700000000", "type": "buy",
		 "pair": "BTC_RUB", "price": "50000", "quantity": "0.01", "amount": "500"}
	]
}`

var testProfile = &models.TradeProfile{
	Name:      "TestAcc",
	PublicKey: "test_public_key",
	SecretKey: "test_secret_key",
}

func setupReconciler(t *testing.T, path, body string) (*OrderReconciler, func()) {
	t.Helper()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test_public_key", r.Header.Get("Key"))
		_, _ = w.Write([]byte(body))
	})
	d, server := setupTestDispatcher(handler)
	return NewOrderReconciler(d, zap.NewNop()), server.Close
}

func TestOrderReconcilerHydrate(t *testing.T) {
	t.Run("MatchCopiesAllDetailFields", func(t *testing.T) {
		// Arrange
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", openOrdersBody)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			Status:  models.OrderStatusOpen,
			OrderID: "12345",
		}

		// Act
		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		// Assert
		require.NoError(t, err)
		assert.True(t, matched)
		assert.True(t, order.Hydrated())
		assert.Equal(t, time.Unix(1700000000, 0), order.Created)
		assert.Equal(t, "buy", order.OrderType)
		assert.True(t, order.Price.Equal(decimal.RequireFromString("50000")))
		assert.True(t, order.Quantity.Equal(decimal.RequireFromString("0.01")))
		assert.True(t, order.Amount.Equal(decimal.RequireFromString("500")))
	})

	t.Run("NoMatchIsNotAnError", func(t *testing.T) {
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", openOrdersBody)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			Status:  models.OrderStatusOpen,
			OrderID: "99999",
		}

		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		require.NoError(t, err)
		assert.False(t, matched)
		assert.False(t, order.Hydrated())
		assert.Empty(t, order.OrderType)
		assert.True(t, order.Price.IsZero())
	})

	t.Run("UnknownPairBucketIsNotAnError", func(t *testing.T) {
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", openOrdersBody)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "ETH_RUB"},
			Status:  models.OrderStatusOpen,
			OrderID: "12345",
		}

		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		require.NoError(t, err)
		assert.False(t, matched)
		assert.False(t, order.Hydrated())
	})

	t.Run("IdentifiersComparedAsStrings", func(t *testing.T) {
		// An identifier above 2^53 must survive matching untouched.
		body := `{"BTC_RUB": [
			{"order_id": "9007199254740993", "created": "1700000000", "type": "sell",
			 "pair": "BTC_RUB", "price": "1", "quantity": "1", "amount": "1"}
		]}`
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", body)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			OrderID: "9007199254740993",
		}

		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		require.NoError(t, err)
		assert.True(t, matched)
		assert.Equal(t, "9007199254740993", order.OrderID)
	})

	t.Run("MalformedCreatedTimestamp", func(t *testing.T) {
		body := `{"BTC_RUB": [
			{"order_id": "12345", "created": "yesterday", "type": "buy",
			 "pair": "BTC_RUB", "price": "50000", "quantity": "0.01", "amount": "500"}
		]}`
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", body)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			OrderID: "12345",
		}

		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		var parseErr *ResponseParseError
		require.ErrorAs(t, err, &parseErr)
		assert.False(t, matched)
		assert.False(t, order.Hydrated())
	})

	t.Run("ExchangeRejectionPropagates", func(t *testing.T) {
		reconciler, closeServer := setupReconciler(t, "/user_open_orders", `{"error": "Invalid API key"}`)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			OrderID: "12345",
		}

		matched, err := reconciler.Hydrate(context.Background(), order, testProfile)

		var rejected *ExchangeRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.False(t, matched)
	})
}

func TestOrderReconcilerSyncTrades(t *testing.T) {
	t.Run("BuildsChildRecords", func(t *testing.T) {
		body := `{
			"type": "buy", "in_currency": "BTC", "in_amount": "0.01",
			"out_currency": "RUB", "out_amount": "500",
			"trades": [
				{"trade_id": 3, "date": 1700000050, "type": "buy", "pair": "BTC_RUB",
				 "quantity": "0.006", "price": "50000", "amount": "300"},
				{"trade_id": 4, "date": 1700000060, "type": "buy", "pair": "BTC_RUB",
				 "quantity": "0.004", "price": "50000", "amount": "200"}
			]
		}`
		reconciler, closeServer := setupReconciler(t, "/order_trades", body)
		defer closeServer()
		order := &models.Order{
			Pair:    models.Pair{Ticker: "BTC_RUB"},
			OrderID: "12345",
		}
		order.ID = 7

		err := reconciler.SyncTrades(context.Background(), order, testProfile)

		require.NoError(t, err)
		require.Len(t, order.Trades, 2)
		assert.Equal(t, uint(7), order.Trades[0].OrderID)
		assert.Equal(t, "3", order.Trades[0].TradeID)
		assert.Equal(t, time.Unix(1700000050, 0), order.Trades[0].Date)
		assert.True(t, order.Trades[0].Quantity.Equal(decimal.RequireFromString("0.006")))
		assert.True(t, order.Trades[1].Amount.Equal(decimal.RequireFromString("200")))
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		reconciler, closeServer := setupReconciler(t, "/order_trades", `{"type": "buy", "trades": []}`)
		defer closeServer()
		order := &models.Order{OrderID: "12345"}

		err := reconciler.SyncTrades(context.Background(), order, testProfile)

		require.NoError(t, err)
		assert.Empty(t, order.Trades)
	})
}
