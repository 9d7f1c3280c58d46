package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
	"github.com/iho/splitledger/internal/usecase/mocks"
)

func seedLedgerGroup(repo *mocks.MockGroupRepository) {
	shares, err := domain.ComputeShares(
		decimal.RequireFromString("90"),
		domain.SplitEqual,
		domain.SplitParams{MemberIDs: []string{"alice", "bob", "carol"}},
	)
	if err != nil {
		panic(err)
	}

	repo.Seed(&domain.Group{
		ID:   "grp-1",
		Name: "ski trip",
		Members: []domain.Member{
			{ID: "alice"}, {ID: "bob"}, {ID: "carol"},
		},
		Expenses: []domain.Expense{{
			ID:          "exp-1",
			GroupID:     "grp-1",
			Description: "cabin",
			PayerID:     "alice",
			Amount:      decimal.RequireFromString("90"),
			Method:      domain.SplitEqual,
			Shares:      shares,
		}},
		Version: 3,
	})
}

func TestLedgerUseCase_GetBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGroupRepository()
	cache := mocks.NewMockCache(ctrl)
	seedLedgerGroup(repo)

	cache.EXPECT().Get(gomock.Any(), "balances:grp-1:3").Return(nil, nil)
	cache.EXPECT().Set(gomock.Any(), "balances:grp-1:3", gomock.Any(), usecase.BalanceCacheTTL).Return(nil)

	uc := usecase.NewLedgerUseCase(repo, cache, zerolog.Nop(), nil)

	sheet, err := uc.GetBalances(context.Background(), "grp-1")
	require.NoError(t, err)
	require.Equal(t, "grp-1", sheet.GroupID)
	require.EqualValues(t, 3, sheet.Version)
	require.True(t, sheet.Drift.IsZero())

	require.True(t, sheet.Balances["alice"].Equal(decimal.RequireFromString("60")))
	require.True(t, sheet.Balances["bob"].Equal(decimal.RequireFromString("-30")))
	require.True(t, sheet.Balances["carol"].Equal(decimal.RequireFromString("-30")))
}

func TestLedgerUseCase_GetBalances_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGroupRepository()
	cache := mocks.NewMockCache(ctrl)
	seedLedgerGroup(repo)

	cached, err := json.Marshal(&usecase.BalanceSheet{
		GroupID: "grp-1",
		Version: 3,
		Balances: map[string]decimal.Decimal{
			"alice": decimal.RequireFromString("60"),
			"bob":   decimal.RequireFromString("-30"),
			"carol": decimal.RequireFromString("-30"),
		},
	})
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), "balances:grp-1:3").Return(cached, nil)

	uc := usecase.NewLedgerUseCase(repo, cache, zerolog.Nop(), nil)

	sheet, err := uc.GetBalances(context.Background(), "grp-1")
	require.NoError(t, err)
	require.True(t, sheet.Balances["alice"].Equal(decimal.RequireFromString("60")))
}

func TestLedgerUseCase_GetBalances_NoCache(t *testing.T) {
	repo := mocks.NewMockGroupRepository()
	seedLedgerGroup(repo)

	uc := usecase.NewLedgerUseCase(repo, nil, zerolog.Nop(), nil)

	sheet, err := uc.GetBalances(context.Background(), "grp-1")
	require.NoError(t, err)
	require.Len(t, sheet.Balances, 3)
}

func TestLedgerUseCase_GetBalances_GroupNotFound(t *testing.T) {
	repo := mocks.NewMockGroupRepository()

	uc := usecase.NewLedgerUseCase(repo, nil, zerolog.Nop(), nil)

	_, err := uc.GetBalances(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestLedgerUseCase_GetSettlementPlan(t *testing.T) {
	repo := mocks.NewMockGroupRepository()
	seedLedgerGroup(repo)

	uc := usecase.NewLedgerUseCase(repo, nil, zerolog.Nop(), nil)

	plan, err := uc.GetSettlementPlan(context.Background(), "grp-1")
	require.NoError(t, err)
	require.Len(t, plan, 2)

	for _, tx := range plan {
		require.Equal(t, "alice", tx.ToMemberID)
		require.True(t, tx.Amount.Equal(decimal.RequireFromString("30")))
	}
}

func TestLedgerUseCase_GetMemberBalance(t *testing.T) {
	repo := mocks.NewMockGroupRepository()
	seedLedgerGroup(repo)

	uc := usecase.NewLedgerUseCase(repo, nil, zerolog.Nop(), nil)

	balance, err := uc.GetMemberBalance(context.Background(), "grp-1", "bob")
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("-30")))

	_, err = uc.GetMemberBalance(context.Background(), "grp-1", "mallory")
	require.ErrorIs(t, err, domain.ErrMemberNotInGroup)
}
