package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
)

// BalanceSheet is the derived ledger view of a group at one version.
type BalanceSheet struct {
	GroupID  string                     `json:"group_id"`
	Version  int64                      `json:"version"`
	Balances map[string]decimal.Decimal `json:"balances"`
	Drift    decimal.Decimal            `json:"drift"`
}

// LedgerUseCase answers balance and settlement queries. Both are derived
// from the expense history on demand; nothing here writes to the group.
type LedgerUseCase struct {
	groupRepo GroupRepository
	cache     Cache
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	groupRepo GroupRepository,
	cache Cache,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		groupRepo: groupRepo,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
	}
}

// GetBalances computes the net balance per member. Results are cached keyed
// by group version, so any committed write naturally misses the cache.
func (uc *LedgerUseCase) GetBalances(ctx context.Context, groupID string) (*BalanceSheet, error) {
	if uc.metrics != nil {
		uc.metrics.BalanceQueries.Inc()
	}

	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	cacheKey := balanceCacheKey(group.ID, group.Version)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var sheet BalanceSheet
			if err := json.Unmarshal(data, &sheet); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}

				return &sheet, nil
			}
		}

		if uc.metrics != nil {
			uc.metrics.BalanceCacheMisses.Inc()
		}
	}

	balances, drift := domain.ComputeBalances(group.Expenses, group.Members)

	if drift.Abs().GreaterThan(domain.AmountTolerance) {
		// Best-effort result; the drift points at corrupted share data.
		uc.logger.Warn().
			Str("group_id", group.ID).
			Int64("version", group.Version).
			Str("drift", drift.String()).
			Msg("balance reconciliation drift exceeds tolerance")

		if uc.metrics != nil {
			uc.metrics.ReconciliationWarnings.Inc()
		}
	}

	sheet := &BalanceSheet{
		GroupID:  group.ID,
		Version:  group.Version,
		Balances: balances,
		Drift:    drift,
	}

	if uc.cache != nil {
		if data, err := json.Marshal(sheet); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, data, BalanceCacheTTL)
		}
	}

	return sheet, nil
}

// GetSettlementPlan computes the transfers that would settle the group.
func (uc *LedgerUseCase) GetSettlementPlan(ctx context.Context, groupID string) ([]domain.SettlementTransaction, error) {
	sheet, err := uc.GetBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	plan := domain.ComputeSettlement(sheet.Balances)

	if uc.metrics != nil {
		uc.metrics.SettlementPlans.Inc()
		uc.metrics.SettlementTransfers.Observe(float64(len(plan)))
	}

	return plan, nil
}

// GetMemberBalance returns one member's net balance in the group.
func (uc *LedgerUseCase) GetMemberBalance(ctx context.Context, groupID, memberID string) (decimal.Decimal, error) {
	sheet, err := uc.GetBalances(ctx, groupID)
	if err != nil {
		return decimal.Zero, err
	}

	balance, ok := sheet.Balances[memberID]
	if !ok {
		return decimal.Zero, domain.ErrMemberNotInGroup
	}

	return balance, nil
}

func balanceCacheKey(groupID string, version int64) string {
	return fmt.Sprintf("balances:%s:%d", groupID, version)
}
