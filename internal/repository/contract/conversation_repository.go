package contract

import (
	"context"
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"
)

type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByUserId(ctx context.Context, userId string) error
}

type UserPreferenceRepository interface {
	Upsert(ctx context.Context, pref *entity.UserPreference) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserPreference, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserPreference, error)
	DeleteByUserId(ctx context.Context, userId string) error
}

type UnknownQueryRepository interface {
	// Increment inserts the message with frequency 1 or bumps an existing row.
	Increment(ctx context.Context, message string, seenAt time.Time) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnknownQuery, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
