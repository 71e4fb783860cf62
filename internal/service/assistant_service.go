package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"shopping-assistant-be/internal/constant"
	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/pkg/events"
	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	assistantModule = "Assistant"

	maxProducts        = 6
	maxUnknownProducts = 4
	maxPopularProducts = 8
	maxQuestions       = 3

	searchConfidence     = 0.9
	slotUpdateConfidence = 0.8

	// criteria needed before the assistant stops asking questions
	enoughSlots = 3
)

var ErrEmptyMessage = errors.New("message must not be empty")

// TemplatePicker chooses one of n response variants.
type TemplatePicker func(n int) int

// FirstTemplate always answers with the first variant.
func FirstTemplate(int) int { return 0 }

func RandomTemplate(n int) int { return rand.IntN(n) }

type AssistantOptions struct {
	ConfidentThreshold float64
	UnknownThreshold   float64
	TopK               int
	Picker             TemplatePicker
}

func DefaultAssistantOptions() AssistantOptions {
	return AssistantOptions{
		ConfidentThreshold: 0.4,
		UnknownThreshold:   0.2,
		TopK:               nlu.DefaultTopK,
		Picker:             FirstTemplate,
	}
}

type IAssistantService interface {
	Chat(ctx context.Context, userId string, message string) (*dto.ChatResponse, error)
	TestIntents(ctx context.Context, message string) (*dto.IntentTestResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type assistantService struct {
	scorer    *nlu.Scorer
	memory    *memory.Manager
	products  contract.ProductRepository
	publisher events.Publisher
	analytics IAnalyticsService
	logger    logger.ILogger
	tracer    trace.Tracer
	opts      AssistantOptions
	now       func() time.Time
}

// NewAssistantService wires the orchestrator. publisher and analytics may be nil.
func NewAssistantService(
	scorer *nlu.Scorer,
	mem *memory.Manager,
	products contract.ProductRepository,
	publisher events.Publisher,
	analytics IAnalyticsService,
	log logger.ILogger,
	opts AssistantOptions,
) IAssistantService {
	defaults := DefaultAssistantOptions()
	if opts.ConfidentThreshold <= 0 {
		opts.ConfidentThreshold = defaults.ConfidentThreshold
	}
	if opts.UnknownThreshold <= 0 {
		opts.UnknownThreshold = defaults.UnknownThreshold
	}
	if opts.TopK <= 0 {
		opts.TopK = defaults.TopK
	}
	if opts.Picker == nil {
		opts.Picker = defaults.Picker
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &assistantService{
		scorer:    scorer,
		memory:    mem,
		products:  products,
		publisher: publisher,
		analytics: analytics,
		logger:    log,
		tracer:    otel.Tracer("shopping-assistant-be/assistant"),
		opts:      opts,
		now:       time.Now,
	}
}

// turnInput is everything a branch may look at to build its reply.
type turnInput struct {
	primary       nlu.IntentScore
	intents       []nlu.IntentScore
	merged        nlu.Slots
	historyLength int
	hasPrefs      bool
	lastQuestions []string
}

func (s *assistantService) Chat(ctx context.Context, userId string, message string) (*dto.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	userId = strings.TrimSpace(userId)
	if userId == "" {
		userId = dto.AnonymousUserId
	}

	ctx, span := s.tracer.Start(ctx, "assistant.Chat")
	defer span.End()

	primary := s.scorer.PrimaryIntent(message)
	intents := s.scorer.DetectIntents(message, s.opts.TopK)
	span.SetAttributes(
		attribute.String("assistant.intent", primary.Intent),
		attribute.Float64("assistant.confidence", primary.Confidence),
	)

	var res *dto.ChatResponse
	var recorded memory.Turn
	err := s.memory.WithUser(ctx, userId, func(u *memory.UserSession) error {
		prefs := u.Preferences()
		in := turnInput{
			primary:       primary,
			intents:       intents,
			merged:        mergeContext(prefs, u.Context(), primary.Slots),
			historyLength: len(u.History(0)),
			hasPrefs:      len(prefs) > 0,
			lastQuestions: u.LastQuestions(),
		}

		var err error
		res, err = s.respond(ctx, in)
		if err != nil {
			return err
		}

		slots := primary.Slots
		if isRedirectIntent(primary.Intent) {
			// nothing from an off-topic message may reach the preferences
			slots = nlu.Slots{}
		}
		u.SetLastQuestions(res.SuggestedQuestions)
		recorded = u.RecordTurn(memory.Turn{
			Message:    message,
			Intent:     primary.Intent,
			Confidence: primary.Confidence,
			Slots:      slots,
			Response:   res.Response,
		})
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(assistantModule, "Failed to answer message", map[string]interface{}{
			"user_id": userId,
			"intent":  primary.Intent,
			"error":   err.Error(),
		})
		return nil, err
	}

	res.Timestamp = recorded.Timestamp
	if s.isUnknown(primary) {
		s.memory.LogUnknown(ctx, message)
		s.publish(ctx, events.NewUnknownQuery(userId, message, recorded.Timestamp))
	}
	s.publish(ctx, events.NewTurnRecorded(userId, primary.Intent, primary.Confidence, len(res.Products), recorded.Timestamp))

	s.logger.Info(assistantModule, "Message answered", map[string]interface{}{
		"user_id":    userId,
		"intent":     primary.Intent,
		"confidence": primary.Confidence,
		"products":   len(res.Products),
	})
	return res, nil
}

// respond picks the branch for the primary intent. Off-topic and personal
// questions are redirected whatever their confidence.
func (s *assistantService) respond(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	switch {
	case in.primary.Intent == nlu.IntentOffTopic:
		return s.redirect(nlu.IntentOffTopic, constant.OffTopicTemplates, constant.OffTopicSuggestions), nil
	case in.primary.Intent == nlu.IntentPersonalQuestion:
		return s.redirect(nlu.IntentPersonalQuestion, constant.PersonalTemplates, constant.PersonalRedirects), nil
	case in.primary.Confidence >= s.opts.ConfidentThreshold:
		return s.confident(ctx, in)
	case s.isUnknown(in.primary):
		return s.unknown(ctx, in)
	default:
		return s.uncertain(ctx, in)
	}
}

func (s *assistantService) isUnknown(primary nlu.IntentScore) bool {
	if isRedirectIntent(primary.Intent) || primary.Confidence >= s.opts.ConfidentThreshold {
		return false
	}
	return primary.Intent == nlu.IntentUnknown || primary.Confidence < s.opts.UnknownThreshold
}

func (s *assistantService) confident(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	switch in.primary.Intent {
	case nlu.IntentGreeting:
		return s.greeting(in), nil
	case nlu.IntentFarewell:
		return &dto.ChatResponse{
			Response:           s.pick(constant.FarewellTemplates),
			Products:           []*entity.Product{},
			Confidence:         1.0,
			DetectedIntents:    []string{nlu.IntentFarewell},
			ContextUsed:        in.merged.ToMap(),
			SuggestedQuestions: []string{},
		}, nil
	case nlu.IntentHelpRequest:
		return s.help(in), nil
	case nlu.IntentProductSearch, nlu.IntentGift, nlu.IntentCategoryPreference:
		return s.productSearch(ctx, in)
	case nlu.IntentRecipientInfo, nlu.IntentBudgetInfo, nlu.IntentColorPreference, nlu.IntentAgeInfo:
		return s.slotUpdate(ctx, in)
	default:
		return s.general(in), nil
	}
}

func (s *assistantService) redirect(intent string, answers, followUps []string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Response:           s.pick(answers) + "\n\n" + s.pick(followUps),
		Products:           []*entity.Product{},
		Confidence:         1.0,
		DetectedIntents:    []string{intent},
		ContextUsed:        map[string]interface{}{},
		SuggestedQuestions: append([]string{}, constant.RedirectQuestions...),
	}
}

func (s *assistantService) greeting(in turnInput) *dto.ChatResponse {
	var text string
	if in.historyLength > 1 {
		text = s.pick(constant.ReturningGreetingTemplates)
	} else {
		text = s.pick(constant.GreetingTemplates)
	}
	if in.hasPrefs {
		text += "\n\n" + constant.PreferencesHint
	}

	return &dto.ChatResponse{
		Response:           text,
		Products:           []*entity.Product{},
		Confidence:         1.0,
		DetectedIntents:    []string{nlu.IntentGreeting},
		ContextUsed:        in.merged.ToMap(),
		SuggestedQuestions: append([]string{}, constant.GreetingQuestions...),
	}
}

func (s *assistantService) help(in turnInput) *dto.ChatResponse {
	var b strings.Builder
	b.WriteString(s.pick(constant.HelpTemplates))
	b.WriteString("\n\n")
	b.WriteString(constant.HelpCapabilitiesHeader)
	for _, capability := range constant.HelpCapabilities {
		b.WriteString("\n• ")
		b.WriteString(capability)
	}

	return &dto.ChatResponse{
		Response:           b.String(),
		Products:           []*entity.Product{},
		Confidence:         1.0,
		DetectedIntents:    []string{nlu.IntentHelpRequest},
		ContextUsed:        in.merged.ToMap(),
		SuggestedQuestions: append([]string{}, constant.HelpQuestions...),
	}
}

func (s *assistantService) productSearch(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	products, err := s.searchWithContext(ctx, in.merged)
	if err != nil {
		return nil, err
	}

	var text string
	var needsClarification bool
	if len(products) > 0 {
		text = s.pick(constant.ProductSearchTemplates)
		if info := criteriaSummary(in.merged); info != "" {
			text += "\n\n" + constant.SearchCriteriaPrefix + info
		}
		text += "\n\n" + fmt.Sprintf(constant.SearchFoundFormat, len(products))
		needsClarification = in.merged.Count() < enoughSlots
	} else {
		text = constant.SearchNoMatch + "\n\n" + constant.SearchAlternatives
		products, err = s.popular(ctx, maxProducts)
		if err != nil {
			return nil, err
		}
		needsClarification = true
	}

	questions := []string{}
	if needsClarification {
		questions = clarificationQuestions(in.merged, in.lastQuestions)
	}

	detected := make([]string, 0, len(in.intents))
	for _, intent := range in.intents {
		detected = append(detected, intent.Intent)
	}

	return &dto.ChatResponse{
		Response:           text,
		Products:           limit(products, maxProducts),
		Confidence:         searchConfidence,
		DetectedIntents:    detected,
		ContextUsed:        in.merged.ToMap(),
		NeedsClarification: needsClarification,
		SuggestedQuestions: questions,
	}, nil
}

func (s *assistantService) slotUpdate(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	text, ok := constant.SlotAcknowledgments[in.primary.Intent]
	if !ok {
		text = constant.DefaultAcknowledgment
	}

	products, err := s.searchWithContext(ctx, in.merged)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		text += "\n\n" + fmt.Sprintf(constant.SlotUpdateFoundFormat, len(products))
	} else {
		text += "\n\n" + constant.SlotUpdateNeedMore
	}

	return &dto.ChatResponse{
		Response:           text,
		Products:           limit(products, maxProducts),
		Confidence:         slotUpdateConfidence,
		DetectedIntents:    []string{in.primary.Intent},
		ContextUsed:        in.merged.ToMap(),
		NeedsClarification: in.merged.Count() < enoughSlots,
		SuggestedQuestions: clarificationQuestions(in.merged, in.lastQuestions),
	}, nil
}

// general answers intents added at runtime that have no dedicated branch.
func (s *assistantService) general(in turnInput) *dto.ChatResponse {
	text := fmt.Sprintf(constant.GeneralDetectedFormat, in.primary.Intent, in.primary.Confidence*100) +
		"\n\n" + constant.GeneralHowToHelp

	return &dto.ChatResponse{
		Response:           text,
		Products:           []*entity.Product{},
		Confidence:         in.primary.Confidence,
		DetectedIntents:    []string{in.primary.Intent},
		ContextUsed:        in.merged.ToMap(),
		NeedsClarification: true,
		SuggestedQuestions: append([]string{}, constant.GeneralQuestions...),
	}
}

func (s *assistantService) uncertain(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	parts := make([]string, 0, 4)
	products := []*entity.Product{}

	if isShoppingIntent(in.primary.Intent) {
		parts = append(parts, s.pick(constant.UncertainShoppingTemplates))
		if len(in.primary.MatchedKeywords) > 0 {
			parts = append(parts, fmt.Sprintf(constant.UncertainUnderstoodFormat, strings.Join(in.primary.MatchedKeywords, ", ")))
		}

		found, err := s.searchWithContext(ctx, in.merged)
		if err != nil {
			return nil, err
		}
		products = limit(found, maxProducts)
		parts = append(parts, fmt.Sprintf(constant.UncertainFoundFormat, len(products)))
		if in.merged.Count() < enoughSlots {
			parts = append(parts, constant.UncertainRefineShopping)
		}
	} else {
		parts = append(parts, s.pick(constant.UncertainOtherTemplates))
		if len(in.primary.MatchedKeywords) > 0 {
			parts = append(parts, fmt.Sprintf(constant.UncertainTopicFormat, strings.Join(in.primary.MatchedKeywords, ", ")))
		}
		parts = append(parts, constant.UncertainRefineOther)
	}

	return &dto.ChatResponse{
		Response:           strings.Join(parts, "\n\n"),
		Products:           products,
		Confidence:         in.primary.Confidence,
		DetectedIntents:    []string{in.primary.Intent},
		ContextUsed:        in.merged.ToMap(),
		NeedsClarification: true,
		SuggestedQuestions: clarificationQuestions(in.merged, in.lastQuestions),
	}, nil
}

// unknown only looks at what the current message says; remembered slots are
// not enough to justify showing products.
func (s *assistantService) unknown(ctx context.Context, in turnInput) (*dto.ChatResponse, error) {
	current := in.primary.Slots.Only(nlu.SlotRecipient, nlu.SlotMaxPrice, nlu.SlotColor, nlu.SlotAge, nlu.SlotCategory)
	strong := current.Count() >= 2 || current.Category != nil || current.MaxPrice != nil

	products := []*entity.Product{}
	hint := constant.UnknownCapabilities
	if strong {
		found, err := s.searchWithContext(ctx, current)
		if err != nil {
			return nil, err
		}
		products = limit(found, maxUnknownProducts)
		hint = constant.UnknownWithProducts
	}

	return &dto.ChatResponse{
		Response:           s.pick(constant.UnknownTemplates) + "\n\n" + hint + "\n\n" + constant.UnknownExamples,
		Products:           products,
		Confidence:         0,
		DetectedIntents:    []string{nlu.IntentUnknown},
		ContextUsed:        current.ToMap(),
		NeedsClarification: true,
		SuggestedQuestions: append([]string{}, constant.UnknownQuestions...),
	}, nil
}

// searchWithContext queries the catalog with the criteria derived from slots.
// An empty result is retried without color, then without category, then
// without age group, each time starting from the full criteria.
func (s *assistantService) searchWithContext(ctx context.Context, slots nlu.Slots) ([]*entity.Product, error) {
	criteria := CriteriaFromSlots(slots)
	if criteria.IsEmpty() {
		return s.popular(ctx, maxPopularProducts)
	}

	products, err := s.products.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	if len(products) > 0 || criteria.Len() <= 1 {
		return products, nil
	}

	for _, name := range []string{entity.CriterionColor, entity.CriterionCategory, entity.CriterionAgeGroup} {
		if !criteria.Has(name) {
			continue
		}
		products, err = s.products.Search(ctx, criteria.Without(name))
		if err != nil {
			return nil, fmt.Errorf("catalog search failed: %w", err)
		}
		if len(products) > 0 {
			s.logger.Debug(assistantModule, "Search relaxed", map[string]interface{}{
				"dropped": name,
				"results": len(products),
			})
			break
		}
	}
	return products, nil
}

func (s *assistantService) popular(ctx context.Context, n int) ([]*entity.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return limit(all, n), nil
}

func (s *assistantService) TestIntents(ctx context.Context, message string) (*dto.IntentTestResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	res := &dto.IntentTestResponse{
		Message:       message,
		Normalized:    nlu.Normalize(message),
		PrimaryIntent: s.scorer.PrimaryIntent(message),
		AllIntents:    s.scorer.DetectIntents(message, 5),
	}
	s.publish(ctx, events.BaseEvent{
		Type:       events.TypeIntentsTested,
		Data:       map[string]interface{}{"intent": res.PrimaryIntent.Intent},
		OccurredAt: s.now(),
	})
	return res, nil
}

func (s *assistantService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	unknown, err := s.memory.UnknownQueries(ctx, 20)
	if err != nil {
		return nil, err
	}
	count, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := s.products.Colors(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.StatsResponse{
		IntentScorer:       s.scorer.Stats(),
		ConversationMemory: s.memory.Stats(),
		ConfidentThreshold: s.opts.ConfidentThreshold,
		UnknownThreshold:   s.opts.UnknownThreshold,
		ResponseTemplates: map[string]int{
			nlu.IntentGreeting:      len(constant.GreetingTemplates),
			nlu.IntentFarewell:      len(constant.FarewellTemplates),
			nlu.IntentHelpRequest:   len(constant.HelpTemplates),
			nlu.IntentProductSearch: len(constant.ProductSearchTemplates),
			nlu.IntentUnknown:       len(constant.UnknownTemplates),
		},
		TopUnknownQueries: unknown,
		Catalog: dto.CatalogStats{
			TotalProducts: count,
			Categories:    categories,
			Colors:        colors,
		},
	}
	if s.analytics != nil {
		res.EventCounts, res.IntentEventCounts = s.analytics.Counts()
	}
	return res, nil
}

func (s *assistantService) pick(templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	i := s.opts.Picker(len(templates))
	if i < 0 || i >= len(templates) {
		i = 0
	}
	return templates[i]
}

func (s *assistantService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(assistantModule, "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

// mergeContext layers the long-term preferences, then the recent session
// slots, then the current message. Later layers win.
func mergeContext(prefs memory.Preferences, session memory.Context, message nlu.Slots) nlu.Slots {
	return prefs.Slots().Merge(session.Slots).Merge(message)
}

// CriteriaFromSlots maps conversation slots to catalog criteria. A known age
// decides the age group over the one implied by the recipient. The occasion
// only steers clarification and never narrows the catalog.
func CriteriaFromSlots(slots nlu.Slots) entity.SearchCriteria {
	var c entity.SearchCriteria
	if slots.Color != nil {
		c.Color = *slots.Color
	}
	if slots.MaxPrice != nil {
		c.MaxPrice = *slots.MaxPrice
	}
	if slots.Recipient != nil {
		switch r := *slots.Recipient; r {
		case "fille", "garçon":
			c.Gender = r
			c.AgeGroup = "enfant"
		case "femme", "homme":
			c.Gender = r
			c.AgeGroup = "adulte"
		case "enfant":
			c.AgeGroup = "enfant"
		}
	}
	if slots.Age != nil {
		c.AgeGroup = AgeGroup(*slots.Age)
	}
	if slots.Category != nil {
		c.Category = *slots.Category
	}
	return c
}

func AgeGroup(age int) string {
	switch {
	case age < 3:
		return "bébé"
	case age <= 12:
		return "enfant"
	case age <= 17:
		return "ado"
	default:
		return "adulte"
	}
}

// clarificationQuestions asks for missing slots in priority order while fewer
// than three are known, skipping any subject the previous turn already asked.
func clarificationQuestions(slots nlu.Slots, previous []string) []string {
	questions := []string{}
	if slots.Count() >= enoughSlots {
		return questions
	}

	asked := askedSubjects(previous)
	ask := func(subject, question string) {
		if !asked[subject] {
			questions = append(questions, question)
		}
	}

	if slots.Recipient == nil {
		ask(nlu.SlotRecipient, constant.ClarifyRecipient)
	} else if isMinor(*slots.Recipient) && slots.Age == nil {
		ask(nlu.SlotAge, constant.ClarifyAge)
	}
	if slots.MaxPrice == nil {
		ask(nlu.SlotMaxPrice, constant.ClarifyBudget)
	}
	if slots.Color == nil {
		ask(nlu.SlotColor, constant.ClarifyColor)
	}
	if slots.Occasion == nil {
		ask(nlu.SlotOccasion, constant.ClarifyOccasion)
	}
	if slots.Category == nil {
		ask(nlu.SlotCategory, constant.ClarifyCategory)
	}

	return limitStrings(questions, maxQuestions)
}

// "age" must stand alone so "message" or "voyage" do not count.
var ageQuestion = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(?:âge|age)(?:$|[^\p{L}\p{N}_])`)

// askedSubjects recognises which slot each earlier question was about.
func askedSubjects(questions []string) map[string]bool {
	asked := make(map[string]bool)
	for _, q := range questions {
		q = strings.ToLower(q)
		if strings.Contains(q, "pour qui") {
			asked[nlu.SlotRecipient] = true
		}
		if ageQuestion.MatchString(q) {
			asked[nlu.SlotAge] = true
		}
		if strings.Contains(q, "budget") {
			asked[nlu.SlotMaxPrice] = true
		}
		if strings.Contains(q, "couleur") {
			asked[nlu.SlotColor] = true
		}
		if strings.Contains(q, "occasion") {
			asked[nlu.SlotOccasion] = true
		}
		if strings.Contains(q, "type de produit") {
			asked[nlu.SlotCategory] = true
		}
	}
	return asked
}

func criteriaSummary(slots nlu.Slots) string {
	var info []string
	if slots.Recipient != nil {
		info = append(info, "pour "+*slots.Recipient)
	}
	if slots.MaxPrice != nil {
		info = append(info, fmt.Sprintf("budget %g DT", *slots.MaxPrice))
	}
	if slots.Color != nil {
		info = append(info, "couleur "+*slots.Color)
	}
	return strings.Join(info, ", ")
}

func isRedirectIntent(intent string) bool {
	return intent == nlu.IntentOffTopic || intent == nlu.IntentPersonalQuestion
}

func isShoppingIntent(intent string) bool {
	switch intent {
	case nlu.IntentProductSearch, nlu.IntentGift, nlu.IntentCategoryPreference, nlu.IntentBudgetInfo, nlu.IntentRecipientInfo:
		return true
	}
	return false
}

func isMinor(recipient string) bool {
	switch recipient {
	case "fille", "garçon", "enfant", "bébé":
		return true
	}
	return false
}

func limit(products []*entity.Product, n int) []*entity.Product {
	if products == nil {
		return []*entity.Product{}
	}
	if len(products) > n {
		return products[:n]
	}
	return products
}

func limitStrings(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
