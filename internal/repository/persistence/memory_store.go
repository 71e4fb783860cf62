package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSchemaMissing is returned when the tables have not been created yet.
var ErrSchemaMissing = errors.New("conversation tables missing, run cmd/migrate")

const pgUndefinedTable = "42P01"

// MemoryStore persists conversation memory through the unit of work.
type MemoryStore struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ memory.Store = (*MemoryStore)(nil)

func NewMemoryStore(uowFactory unitofwork.RepositoryFactory) *MemoryStore {
	return &MemoryStore{uowFactory: uowFactory}
}

func (s *MemoryStore) AppendTurn(ctx context.Context, turn memory.Turn) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e := &entity.ConversationTurn{
		Id:         turn.ID,
		UserId:     turn.UserID,
		Message:    turn.Message,
		Intent:     turn.Intent,
		Confidence: turn.Confidence,
		Slots:      turn.Slots.ToMap(),
		Response:   turn.Response,
		CreatedAt:  turn.Timestamp,
	}
	return classify(uow.ConversationTurnRepository().Create(ctx, e))
}

func (s *MemoryStore) UpsertPreferences(ctx context.Context, userID string, prefs memory.Preferences) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e := &entity.UserPreference{
		UserId:      userID,
		Preferences: preferencesToEntity(prefs),
		UpdatedAt:   time.Now(),
	}
	return classify(uow.UserPreferenceRepository().Upsert(ctx, e))
}

func (s *MemoryStore) IncrementUnknown(ctx context.Context, message string, seenAt time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return classify(uow.UnknownQueryRepository().Increment(ctx, message, seenAt))
}

func (s *MemoryStore) ListUnknown(ctx context.Context, limit int) ([]memory.UnknownQuery, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.UnknownQueryRepository().FindAll(ctx,
		specification.MostFrequentFirst{},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]memory.UnknownQuery, len(rows))
	for i, r := range rows {
		out[i] = memory.UnknownQuery{
			Message:   r.Message,
			Frequency: r.Frequency,
			FirstSeen: r.FirstSeen,
			LastSeen:  r.LastSeen,
		}
	}
	return out, nil
}

func (s *MemoryStore) LoadTurnsSince(ctx context.Context, since time.Time) ([]memory.Turn, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.CreatedAfter{Time: since},
		specification.OrderBy{Field: "user_id"},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, classify(err)
	}
	return turnsFromEntities(rows), nil
}

// LoadUser reads the newest limit turns and returns them oldest first.
func (s *MemoryStore) LoadUser(ctx context.Context, userID string, limit int) ([]memory.Turn, memory.Preferences, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.ByUserID{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, nil, classify(err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	pref, err := uow.UserPreferenceRepository().FindOne(ctx, specification.ByUserID{UserID: userID})
	if err != nil {
		return nil, nil, classify(err)
	}
	prefs := memory.Preferences{}
	if pref != nil {
		prefs = preferencesFromEntity(pref.Preferences)
	}
	return turnsFromEntities(rows), prefs, nil
}

func (s *MemoryStore) LoadPreferences(ctx context.Context, userIDs []string) (map[string]memory.Preferences, error) {
	out := make(map[string]memory.Preferences, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.UserPreferenceRepository().FindAll(ctx, specification.ByUserIDs{UserIDs: userIDs})
	if err != nil {
		return nil, classify(err)
	}
	for _, r := range rows {
		out[r.UserId] = preferencesFromEntity(r.Preferences)
	}
	return out, nil
}

// DeleteUser removes turns and preferences in one transaction.
func (s *MemoryStore) DeleteUser(ctx context.Context, userID string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return classify(err)
	}
	defer uow.Rollback()

	if err := uow.ConversationTurnRepository().DeleteByUserId(ctx, userID); err != nil {
		return classify(err)
	}
	if err := uow.UserPreferenceRepository().DeleteByUserId(ctx, userID); err != nil {
		return classify(err)
	}
	return uow.Commit()
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
	}
	return err
}

func turnsFromEntities(rows []*entity.ConversationTurn) []memory.Turn {
	out := make([]memory.Turn, len(rows))
	for i, r := range rows {
		out[i] = memory.Turn{
			ID:         r.Id,
			UserID:     r.UserId,
			Message:    r.Message,
			Intent:     r.Intent,
			Confidence: r.Confidence,
			Slots:      nlu.SlotsFromMap(r.Slots),
			Response:   r.Response,
			Timestamp:  r.CreatedAt,
		}
	}
	return out
}

func preferencesToEntity(prefs memory.Preferences) map[string]entity.PreferenceValue {
	out := make(map[string]entity.PreferenceValue, len(prefs))
	for k, v := range prefs {
		out[k] = entity.PreferenceValue{Value: v.Value, Frequency: v.Frequency}
	}
	return out
}

func preferencesFromEntity(prefs map[string]entity.PreferenceValue) memory.Preferences {
	out := make(memory.Preferences, len(prefs))
	for k, v := range prefs {
		out[k] = memory.Preference{Value: v.Value, Frequency: v.Frequency}
	}
	return out
}
