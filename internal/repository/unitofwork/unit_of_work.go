package unitofwork

import (
	"context"

	"callcenter-analysis-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	DailyReportRepository() contract.DailyReportRepository
}
