package dto

import (
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"
)

const AnonymousUserId = "anonymous"

type ChatRequest struct {
	UserId  string `json:"user_id"`
	Message string `json:"message" validate:"required,notblank"`
}

type ChatResponse struct {
	Response           string                 `json:"response"`
	Products           []*entity.Product      `json:"products"`
	Confidence         float64                `json:"confidence"`
	DetectedIntents    []string               `json:"detected_intents"`
	ContextUsed        map[string]interface{} `json:"context_used"`
	NeedsClarification bool                   `json:"needs_clarification"`
	SuggestedQuestions []string               `json:"suggested_questions"`
	Timestamp          time.Time              `json:"timestamp"`
}

type IntentTestResponse struct {
	Message       string            `json:"message"`
	Normalized    string            `json:"normalized"`
	PrimaryIntent nlu.IntentScore   `json:"primary_intent"`
	AllIntents    []nlu.IntentScore `json:"all_intents"`
}

type ProductSearchRequest struct {
	Color    string   `json:"color"`
	Category string   `json:"category"`
	MaxPrice float64  `json:"max_price" validate:"gte=0"`
	Tags     []string `json:"tags"`
	Gender   string   `json:"gender"`
	AgeGroup string   `json:"age_group"`
}

type ProductListResponse struct {
	Products []*entity.Product `json:"products"`
	Count    int               `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CategoriesResponse struct {
	Categories []string   `json:"categories"`
	Colors     []string   `json:"colors"`
	PriceRange PriceRange `json:"price_range"`
}

type CatalogStats struct {
	TotalProducts int64    `json:"total_products"`
	Categories    []string `json:"categories"`
	Colors        []string `json:"colors"`
}

type MemoryResponse struct {
	UserId         string                 `json:"user_id"`
	History        []memory.Turn          `json:"conversation_history"`
	CurrentContext map[string]interface{} `json:"current_context"`
	Preferences    memory.Preferences     `json:"user_preferences"`
	TotalTurns     int                    `json:"total_turns"`
}

type UnknownQueriesResponse struct {
	Queries []memory.UnknownQuery `json:"unknown_queries"`
	Count   int                   `json:"count"`
}

type StatsResponse struct {
	IntentScorer       map[string]nlu.IntentStats `json:"intent_scorer"`
	ConversationMemory memory.Stats               `json:"conversation_memory"`
	ConfidentThreshold float64                    `json:"confidence_threshold"`
	UnknownThreshold   float64                    `json:"unknown_threshold"`
	ResponseTemplates  map[string]int             `json:"response_templates"`
	TopUnknownQueries  []memory.UnknownQuery      `json:"top_unknown_queries"`
	Catalog            CatalogStats               `json:"catalog"`
	EventCounts        map[string]int64           `json:"event_counts,omitempty"`
	IntentEventCounts  map[string]int64           `json:"intent_event_counts,omitempty"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

type ServiceInfoResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}
