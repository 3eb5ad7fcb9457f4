package usecases

import (
	"context"
	"math"
	"strconv"
	"time"

	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/domain/repositories"
	"payzen.backend/internal/infrastructure/blockchain"
)

// DashboardUsecase aggregates live balance with ledger statistics
type DashboardUsecase struct {
	txRepo  repositories.TransactionRepository
	gateway ChainGateway
	now     func() time.Time
}

// NewDashboardUsecase creates a new dashboard usecase
func NewDashboardUsecase(txRepo repositories.TransactionRepository, gateway ChainGateway) *DashboardUsecase {
	return &DashboardUsecase{
		txRepo:  txRepo,
		gateway: gateway,
		now:     time.Now,
	}
}

// GetStats computes the dashboard view for a wallet. Balance comes live
// from the chain (degrading to "0"); volumes and counts come from
// completed ledger rows, windowed by UTC calendar month.
func (u *DashboardUsecase) GetStats(ctx context.Context, walletAddress string) (*entities.DashboardStats, error) {
	wallet := blockchain.NormalizeAddress(walletAddress)

	now := u.now().UTC()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextStart := currentStart.AddDate(0, 1, 0)
	previousStart := currentStart.AddDate(0, -1, 0)

	current, err := u.txRepo.Aggregate(ctx, wallet, &currentStart, &nextStart)
	if err != nil {
		return nil, err
	}
	previous, err := u.txRepo.Aggregate(ctx, wallet, &previousStart, &currentStart)
	if err != nil {
		return nil, err
	}
	allTime, err := u.txRepo.Aggregate(ctx, wallet, nil, nil)
	if err != nil {
		return nil, err
	}

	currentVolume := current.ReceivedAmount + current.SentAmount
	previousVolume := previous.ReceivedAmount + previous.SentAmount

	changePct := 0.0
	if previousVolume > 0 {
		changePct = math.Round((currentVolume-previousVolume)/previousVolume*100*100) / 100
	}

	balance := u.gateway.GetBalance(ctx, wallet)

	return &entities.DashboardStats{
		TotalBalance:     balance.Amount,
		MonthlyVolume:    formatAmount(currentVolume),
		MonthlyChangePct: changePct,
		ReceivedCount:    allTime.ReceivedCount,
		ReceivedAmount:   formatAmount(allTime.ReceivedAmount),
		SentCount:        allTime.SentCount,
		SentAmount:       formatAmount(allTime.SentAmount),
	}, nil
}

// GetBalance reads the wallet's live token balance
func (u *DashboardUsecase) GetBalance(ctx context.Context, walletAddress string) (*entities.BalanceResult, error) {
	if !blockchain.IsValidAddress(walletAddress) {
		return nil, domainerrors.ErrInvalidAddress
	}
	balance := u.gateway.GetBalance(ctx, blockchain.NormalizeAddress(walletAddress))
	return &balance, nil
}

// Health reports RPC endpoint reachability
func (u *DashboardUsecase) Health(ctx context.Context) *entities.ChainHealth {
	return &entities.ChainHealth{
		Connected: u.gateway.IsConnected(ctx),
		Network:   "base",
	}
}

// formatAmount renders a ledger sum without trailing zeros, capped at the
// token's six fractional digits
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
