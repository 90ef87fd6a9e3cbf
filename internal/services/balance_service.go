package services

import (
	"context"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/money"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type BalanceService struct {
	balances      repo.Balances
	profitPercent decimal.Decimal
}

func NewBalanceService(r repo.Balances, profitPercent float64) *BalanceService {
	return &BalanceService{balances: r, profitPercent: decimal.NewFromFloat(profitPercent)}
}

func (s *BalanceService) Current(ctx context.Context, userID string) (models.Balance, error) {
	b, err := s.balances.GetOrCreate(ctx, userID)
	return b, fromRepo(err)
}

type ProfitProjection struct {
	Balance int64 `json:"balance"`
	Profit  int64 `json:"profit"`
	Total   int64 `json:"total"`
}

// Profit projects earnings on the current balance with the platform
// percentage. Pure math on top of one read.
func (s *BalanceService) Profit(ctx context.Context, userID string) (ProfitProjection, error) {
	b, err := s.balances.GetOrCreate(ctx, userID)
	if err != nil {
		return ProfitProjection{}, fromRepo(err)
	}
	profit, total := money.Profit(b.Amount, s.profitPercent)
	return ProfitProjection{Balance: b.Amount, Profit: profit, Total: total}, nil
}
