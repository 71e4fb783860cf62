package mapper

import (
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/model"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/datatypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) TurnToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}
	slots := make(map[string]interface{})
	if len(t.Slots) > 0 {
		// a corrupt payload reads back as no slots
		_ = json.Unmarshal(t.Slots, &slots)
	}
	return &entity.ConversationTurn{
		Id:         t.Id,
		UserId:     t.UserId,
		Message:    t.Message,
		Intent:     t.Intent,
		Confidence: t.Confidence,
		Slots:      slots,
		Response:   t.Response,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *ConversationMapper) TurnToModel(t *entity.ConversationTurn) (*model.ConversationTurn, error) {
	if t == nil {
		return nil, nil
	}
	slots := t.Slots
	if slots == nil {
		slots = map[string]interface{}{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return nil, err
	}
	return &model.ConversationTurn{
		Id:         t.Id,
		UserId:     t.UserId,
		Message:    t.Message,
		Intent:     t.Intent,
		Confidence: t.Confidence,
		Slots:      datatypes.JSON(raw),
		Response:   t.Response,
		CreatedAt:  t.CreatedAt,
	}, nil
}

func (m *ConversationMapper) PreferenceToEntity(p *model.UserPreference) *entity.UserPreference {
	if p == nil {
		return nil
	}
	prefs := make(map[string]entity.PreferenceValue)
	if len(p.Preferences) > 0 {
		_ = json.Unmarshal(p.Preferences, &prefs)
	}
	return &entity.UserPreference{
		UserId:      p.UserId,
		Preferences: prefs,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ConversationMapper) PreferenceToModel(p *entity.UserPreference) (*model.UserPreference, error) {
	if p == nil {
		return nil, nil
	}
	prefs := p.Preferences
	if prefs == nil {
		prefs = map[string]entity.PreferenceValue{}
	}
	raw, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}
	return &model.UserPreference{
		UserId:      p.UserId,
		Preferences: datatypes.JSON(raw),
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (m *ConversationMapper) UnknownQueryToEntity(q *model.UnknownQuery) *entity.UnknownQuery {
	if q == nil {
		return nil
	}
	return &entity.UnknownQuery{
		Id:        q.Id,
		Message:   q.Message,
		Frequency: q.Frequency,
		FirstSeen: q.FirstSeen,
		LastSeen:  q.LastSeen,
	}
}
