package unitofwork

import (
	"context"

	"shopping-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationTurnRepository() contract.ConversationTurnRepository
	UserPreferenceRepository() contract.UserPreferenceRepository
	UnknownQueryRepository() contract.UnknownQueryRepository
}
