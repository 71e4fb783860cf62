package implementation

import (
	"context"
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/mapper"
	"shopping-assistant-be/internal/model"
	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnknownQueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewUnknownQueryRepository(db *gorm.DB) contract.UnknownQueryRepository {
	return &UnknownQueryRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *UnknownQueryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Increment is a single INSERT ... ON CONFLICT (message) statement, so
// concurrent callers never lose a count.
func (r *UnknownQueryRepositoryImpl) Increment(ctx context.Context, message string, seenAt time.Time) error {
	m := &model.UnknownQuery{
		Message:   message,
		Frequency: 1,
		FirstSeen: seenAt,
		LastSeen:  seenAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "message"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"frequency": gorm.Expr("unknown_queries.frequency + 1"),
			"last_seen": seenAt,
		}),
	}).Create(m).Error
}

func (r *UnknownQueryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnknownQuery, error) {
	var models []*model.UnknownQuery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UnknownQuery, len(models))
	for i, m := range models {
		entities[i] = r.mapper.UnknownQueryToEntity(m)
	}
	return entities, nil
}

func (r *UnknownQueryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UnknownQuery{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
