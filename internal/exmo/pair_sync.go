package exmo

import (
	"context"
	"fmt"

	"exmo-trade-terminal/internal/models"
	"go.uber.org/zap"
)

// PairSettingsSync populates a pair's trading constraints from the
// exchange's public pair-settings endpoint. Re-running overwrites with the
// latest values, so it doubles as a refresh.
type PairSettingsSync struct {
	client ClientInterface
	logger *zap.Logger
}

// NewPairSettingsSync creates a sync backed by the given client. The
// pair-settings command is public; the client needs no credentials.
func NewPairSettingsSync(client ClientInterface, logger *zap.Logger) *PairSettingsSync {
	return &PairSettingsSync{
		client: client,
		logger: logger.Named("pair-sync"),
	}
}

// Sync copies the exchange-enforced min/max quantity, price and amount into
// the pair. A ticker absent from the exchange catalog fails with
// *UnknownTickerError and leaves the pair untouched; it signals a local vs.
// remote catalog mismatch, not a transient condition. The caller persists
// the pair afterwards.
func (s *PairSettingsSync) Sync(ctx context.Context, pair *models.Pair) error {
	settings, err := s.client.PairSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetch pair settings: %w", err)
	}

	entry, ok := settings[pair.Ticker]
	if !ok {
		return &UnknownTickerError{Ticker: pair.Ticker}
	}

	pair.MinQuantity = entry.MinQuantity
	pair.MaxQuantity = entry.MaxQuantity
	pair.MinPrice = entry.MinPrice
	pair.MaxPrice = entry.MaxPrice
	pair.MinAmount = entry.MinAmount
	pair.MaxAmount = entry.MaxAmount

	s.logger.Debug("Synced pair settings", zap.String("ticker", pair.Ticker))
	return nil
}
