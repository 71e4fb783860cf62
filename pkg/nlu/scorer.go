package nlu

import (
	"math"
	"sort"
	"strings"
)

const (
	// DefaultTopK is the number of candidates DetectIntents returns when topK <= 0.
	DefaultTopK = 3

	exactMatchBoost = 1.2
)

type IntentScore struct {
	Intent          string   `json:"intent"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords"`
	Slots           Slots    `json:"context_data"`
}

// Scorer ranks a message against the intents of a lexicon. All methods are
// safe for concurrent use.
type Scorer struct {
	lexicon *Lexicon
}

func NewScorer(lexicon *Lexicon) *Scorer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Scorer{lexicon: lexicon}
}

func (s *Scorer) Lexicon() *Lexicon {
	return s.lexicon
}

// Score rates message against a single intent. An unknown intent scores zero.
func (s *Scorer) Score(message, intent string) IntentScore {
	normalized := Normalize(message)
	slots := Extract(normalized)
	def, ok := s.lexicon.Definition(intent)
	if !ok {
		return IntentScore{Intent: intent, MatchedKeywords: []string{}, Slots: slots}
	}
	return scoreDefinition(normalized, def, slots)
}

// scoreDefinition sums the weight of every phrase found in the message, boosting
// phrases that sit on word boundaries, and divides by half the word count.
func scoreDefinition(normalized string, def IntentDefinition, slots Slots) IntentScore {
	score := IntentScore{Intent: def.Name, MatchedKeywords: []string{}, Slots: slots}

	words := wordCount(normalized)
	if words == 0 {
		return score
	}

	padded := " " + normalized + " "
	var total float64
	for _, kw := range def.Keywords {
		if kw.Phrase == "" || !strings.Contains(normalized, kw.Phrase) {
			continue
		}
		if strings.Contains(padded, " "+kw.Phrase+" ") {
			total += kw.Weight * exactMatchBoost
		} else {
			total += kw.Weight
		}
		score.MatchedKeywords = append(score.MatchedKeywords, kw.Phrase)
	}

	score.Confidence = math.Min(total/math.Max(float64(words)*0.5, 1.0), 1.0)
	return score
}

// DetectIntents returns up to topK intents above their threshold, best first.
// off_topic and then personal_question are checked first; when either clears
// its threshold it is returned alone and nothing else is scored.
func (s *Scorer) DetectIntents(message string, topK int) []IntentScore {
	if strings.TrimSpace(message) == "" {
		return []IntentScore{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	normalized := Normalize(message)
	slots := Extract(normalized)
	defs := s.lexicon.Definitions()

	for _, overriding := range []string{IntentOffTopic, IntentPersonalQuestion} {
		for _, def := range defs {
			if def.Name != overriding {
				continue
			}
			score := scoreDefinition(normalized, def, slots)
			if score.Confidence >= def.Threshold {
				return []IntentScore{score}
			}
		}
	}

	scores := make([]IntentScore, 0, len(defs))
	for _, def := range defs {
		if def.Name == IntentOffTopic || def.Name == IntentPersonalQuestion {
			continue
		}
		score := scoreDefinition(normalized, def, slots)
		if score.Confidence >= def.Threshold {
			scores = append(scores, score)
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	if len(scores) > topK {
		scores = scores[:topK]
	}
	return scores
}

// PrimaryIntent returns the best intent, or "unknown" with zero confidence and
// whatever slots the message still carries.
func (s *Scorer) PrimaryIntent(message string) IntentScore {
	if intents := s.DetectIntents(message, 1); len(intents) > 0 {
		return intents[0]
	}
	return IntentScore{
		Intent:          IntentUnknown,
		Confidence:      0,
		MatchedKeywords: []string{},
		Slots:           Extract(Normalize(message)),
	}
}

func (s *Scorer) AddIntentKeywords(intent string, keywords []Keyword) error {
	return s.lexicon.AddKeywords(intent, keywords)
}

func (s *Scorer) Stats() map[string]IntentStats {
	return s.lexicon.Stats()
}
