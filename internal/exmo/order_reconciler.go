package exmo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"exmo-trade-terminal/internal/models"
	"go.uber.org/zap"
)

// OrderReconciler hydrates locally created orders with the exchange's
// canonical order attributes. Authenticated calls are issued with the
// credentials of the order's trade profile, so one reconciler serves any
// number of profiles.
type OrderReconciler struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewOrderReconciler creates a reconciler over the given dispatcher.
func NewOrderReconciler(dispatcher *Dispatcher, logger *zap.Logger) *OrderReconciler {
	return &OrderReconciler{
		dispatcher: dispatcher,
		logger:     logger.Named("order-reconciler"),
	}
}

func (r *OrderReconciler) clientFor(profile *models.TradeProfile) *Client {
	return NewClient(r.dispatcher, &Credentials{
		PublicKey: profile.PublicKey,
		SecretKey: profile.SecretKey,
	})
}

// Hydrate looks the order up in the profile's open orders by its exchange
// identifier and copies the creation time, order type, price, quantity and
// amount into it. Identifiers are compared as strings; the pair association
// must be loaded so the ticker is known.
//
// A missing match is not an error: an order can legitimately be absent from
// the snapshot when it filled or was cancelled before the check. The
// returned bool reports whether the order was hydrated, and the caller
// decides what an unmatched order means for its workflow. Fields are only
// written on a match, so a miss leaves the order exactly as passed in.
func (r *OrderReconciler) Hydrate(ctx context.Context, order *models.Order, profile *models.TradeProfile) (bool, error) {
	openOrders, err := r.clientFor(profile).UserOpenOrders(ctx)
	if err != nil {
		return false, fmt.Errorf("fetch open orders: %w", err)
	}

	for _, entry := range openOrders[order.Pair.Ticker] {
		if entry.OrderID != order.OrderID {
			continue
		}

		createdSec, err := strconv.ParseInt(entry.Created, 10, 64)
		if err != nil {
			return false, &ResponseParseError{
				Command: CmdUserOpenOrders,
				Err:     fmt.Errorf("created timestamp %q: %w", entry.Created, err),
			}
		}

		order.Created = time.Unix(createdSec, 0)
		order.OrderType = entry.Type
		order.Price = entry.Price
		order.Quantity = entry.Quantity
		order.Amount = entry.Amount

		r.logger.Debug("Hydrated order",
			zap.String("ticker", order.Pair.Ticker),
			zap.String("order_id", order.OrderID),
		)
		return true, nil
	}

	r.logger.Debug("Order not present in open-orders snapshot",
		zap.String("ticker", order.Pair.Ticker),
		zap.String("order_id", order.OrderID),
	)
	return false, nil
}

// SyncTrades replaces the order's in-memory fill records with the fill
// history the exchange reports for its identifier. The caller persists the
// order afterwards; rows are appended on the exchange side, so re-running
// converges on the full fill list.
func (r *OrderReconciler) SyncTrades(ctx context.Context, order *models.Order, profile *models.TradeProfile) error {
	result, err := r.clientFor(profile).OrderTrades(ctx, order.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order trades: %w", err)
	}

	trades := make([]models.OrderTrade, 0, len(result.Trades))
	for _, entry := range result.Trades {
		trades = append(trades, models.OrderTrade{
			OrderID:  order.ID,
			TradeID:  entry.TradeID.String(),
			Date:     time.Unix(entry.Date, 0),
			Quantity: entry.Quantity,
			Price:    entry.Price,
			Amount:   entry.Amount,
		})
	}
	order.Trades = trades

	r.logger.Debug("Synced order trades",
		zap.String("order_id", order.OrderID),
		zap.Int("trades", len(trades)),
	)
	return nil
}
