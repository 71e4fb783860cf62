package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/pkg/events"
	"shopping-assistant-be/pkg/memory"
)

const (
	memoryModule = "MemoryService"

	defaultHistoryLimit = 10
)

var ErrMissingUserId = errors.New("user id is required")

type IMemoryService interface {
	GetMemory(ctx context.Context, userId string, limit int) (*dto.MemoryResponse, error)
	ClearMemory(ctx context.Context, userId string) error
	UnknownQueries(ctx context.Context, limit int) (*dto.UnknownQueriesResponse, error)
	WarmUp(ctx context.Context, window time.Duration) (int, error)
}

type memoryService struct {
	memory    *memory.Manager
	publisher events.Publisher
	logger    logger.ILogger
	now       func() time.Time
}

func NewMemoryService(mem *memory.Manager, publisher events.Publisher, log logger.ILogger) IMemoryService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &memoryService{memory: mem, publisher: publisher, logger: log, now: time.Now}
}

func (ms *memoryService) GetMemory(ctx context.Context, userId string, limit int) (*dto.MemoryResponse, error) {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, ErrMissingUserId
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var res *dto.MemoryResponse
	err := ms.memory.ViewUser(ctx, userId, func(u *memory.UserSession) error {
		all := u.History(0)
		res = &dto.MemoryResponse{
			UserId:         userId,
			History:        u.History(limit),
			CurrentContext: u.Context().ToMap(),
			Preferences:    u.Preferences(),
			TotalTurns:     len(all),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (ms *memoryService) ClearMemory(ctx context.Context, userId string) error {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return ErrMissingUserId
	}

	if err := ms.memory.ClearUser(ctx, userId); err != nil {
		return err
	}

	if err := ms.publisher.Publish(ctx, events.NewUserCleared(userId, ms.now())); err != nil {
		ms.logger.Warn(memoryModule, "Failed to publish event", map[string]interface{}{
			"event_type": events.TypeUserCleared,
			"error":      err.Error(),
		})
	}
	return nil
}

func (ms *memoryService) UnknownQueries(ctx context.Context, limit int) (*dto.UnknownQueriesResponse, error) {
	queries, err := ms.memory.UnknownQueries(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &dto.UnknownQueriesResponse{Queries: queries, Count: len(queries)}, nil
}

// WarmUp loads the conversations of the last window into memory.
func (ms *memoryService) WarmUp(ctx context.Context, window time.Duration) (int, error) {
	return ms.memory.LoadRecent(ctx, ms.now().Add(-window))
}
