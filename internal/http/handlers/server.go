package handlers

import (
	"github.com/castello-soft/stock-ledger/internal/ledger"
	repo "github.com/castello-soft/stock-ledger/internal/repo"
)

var (
	ledgerSvc   *ledger.Service
	metricsRepo repo.MetricsRepository
	userRepo    repo.UserRepository
)

func SetLedgerService(s *ledger.Service) {
	ledgerSvc = s
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}
