package nlu

import (
	"fmt"
	"sync"
)

// Intent names.
const (
	IntentOffTopic           = "off_topic"
	IntentPersonalQuestion   = "personal_question"
	IntentGreeting           = "greeting"
	IntentFarewell           = "farewell"
	IntentProductSearch      = "product_search"
	IntentGift               = "gift_intent"
	IntentRecipientInfo      = "recipient_info"
	IntentBudgetInfo         = "budget_info"
	IntentColorPreference    = "color_preference"
	IntentAgeInfo            = "age_info"
	IntentHelpRequest        = "help_request"
	IntentCategoryPreference = "category_preference"
	IntentUnknown            = "unknown"
)

// NewIntentThreshold applies to intents created at runtime by AddKeywords.
const NewIntentThreshold = 0.6

type Keyword struct {
	Phrase string  `json:"phrase"`
	Weight float64 `json:"weight"`
}

// IntentDefinition is a named set of weighted trigger phrases. An intent whose
// confidence is below Threshold is not reported.
type IntentDefinition struct {
	Name      string    `json:"name"`
	Keywords  []Keyword `json:"keywords"`
	Threshold float64   `json:"threshold"`
}

type IntentStats struct {
	KeywordCount int     `json:"keyword_count"`
	Threshold    float64 `json:"threshold"`
	AvgWeight    float64 `json:"avg_weight"`
}

// Lexicon owns the intent table. Reads are concurrent; AddKeywords takes the
// write lock.
type Lexicon struct {
	mu      sync.RWMutex
	intents []IntentDefinition
	index   map[string]int
}

func NewLexicon(defs []IntentDefinition) (*Lexicon, error) {
	l := &Lexicon{index: make(map[string]int, len(defs))}
	for _, def := range defs {
		if _, exists := l.index[def.Name]; exists {
			return nil, fmt.Errorf("duplicate intent %q", def.Name)
		}
		if err := checkWeights(def.Keywords); err != nil {
			return nil, fmt.Errorf("intent %q: %w", def.Name, err)
		}
		l.index[def.Name] = len(l.intents)
		l.intents = append(l.intents, copyDefinition(def))
	}
	return l, nil
}

// DefaultLexicon builds the lexicon from DefaultIntents.
func DefaultLexicon() *Lexicon {
	l, err := NewLexicon(DefaultIntents())
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Lexicon) Definition(name string) (IntentDefinition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[name]
	if !ok {
		return IntentDefinition{}, false
	}
	return copyDefinition(l.intents[i]), true
}

// Definitions returns a snapshot of the table in definition order.
func (l *Lexicon) Definitions() []IntentDefinition {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]IntentDefinition, len(l.intents))
	for i, def := range l.intents {
		out[i] = copyDefinition(def)
	}
	return out
}

func (l *Lexicon) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.intents))
	for i, def := range l.intents {
		out[i] = def.Name
	}
	return out
}

// AddKeywords extends an intent at runtime. Existing phrases take the new weight,
// new phrases are appended. Unknown intents are created with NewIntentThreshold.
func (l *Lexicon) AddKeywords(intent string, keywords []Keyword) error {
	if intent == "" {
		return fmt.Errorf("intent name is required")
	}
	if err := checkWeights(keywords); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[intent]
	if !ok {
		l.index[intent] = len(l.intents)
		l.intents = append(l.intents, IntentDefinition{
			Name:      intent,
			Keywords:  append([]Keyword(nil), keywords...),
			Threshold: NewIntentThreshold,
		})
		return nil
	}

	def := &l.intents[i]
	for _, kw := range keywords {
		replaced := false
		for j := range def.Keywords {
			if def.Keywords[j].Phrase == kw.Phrase {
				def.Keywords[j].Weight = kw.Weight
				replaced = true
				break
			}
		}
		if !replaced {
			def.Keywords = append(def.Keywords, kw)
		}
	}
	return nil
}

func (l *Lexicon) Stats() map[string]IntentStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]IntentStats, len(l.intents))
	for _, def := range l.intents {
		var sum float64
		for _, kw := range def.Keywords {
			sum += kw.Weight
		}
		avg := 0.0
		if len(def.Keywords) > 0 {
			avg = sum / float64(len(def.Keywords))
		}
		out[def.Name] = IntentStats{
			KeywordCount: len(def.Keywords),
			Threshold:    def.Threshold,
			AvgWeight:    avg,
		}
	}
	return out
}

func checkWeights(keywords []Keyword) error {
	for _, kw := range keywords {
		if kw.Weight < 0 {
			return fmt.Errorf("keyword %q has negative weight %v", kw.Phrase, kw.Weight)
		}
	}
	return nil
}

func copyDefinition(def IntentDefinition) IntentDefinition {
	def.Keywords = append([]Keyword(nil), def.Keywords...)
	return def
}

func kw(phrase string, weight float64) Keyword {
	return Keyword{Phrase: phrase, Weight: weight}
}

// DefaultIntents returns the built-in French shopping intent table. The two
// overriding intents come first.
func DefaultIntents() []IntentDefinition {
	return []IntentDefinition{
		{
			Name:      IntentOffTopic,
			Threshold: 0.3,
			Keywords: []Keyword{
				// general knowledge
				kw("messi", 1.0), kw("football", 0.8), kw("sport", 0.6), kw("équipe", 0.7),
				kw("histoire", 1.0), kw("géographie", 1.0), kw("mathématiques", 1.0), kw("math", 1.0),
				kw("science", 1.0), kw("physique", 1.0), kw("chimie", 1.0), kw("biologie", 1.0),
				kw("politique", 1.0), kw("président", 0.9), kw("gouvernement", 0.9),
				kw("météo", 1.0), kw("temps", 0.7), kw("température", 0.9),
				kw("actualité", 1.0), kw("news", 1.0), kw("nouvelles", 1.0),
				kw("capitale", 1.0), kw("pays", 0.8), kw("ville", 0.7), kw("france", 0.9),
				kw("tunisie", 0.9), kw("calcul", 1.0), kw("2+2", 1.0),
				kw("réveillon", 1.0), kw("nouvel an", 1.0), kw("événement", 0.8),
				// food, travel, health, work, school
				kw("recette", 1.0), kw("cuisine", 0.6), kw("cuisinier", 0.8), kw("plat", 0.8),
				kw("couscous", 1.0), kw("manger", 0.7), kw("nourriture", 0.8),
				kw("voyage", 1.0), kw("vacances", 0.9), kw("tourisme", 0.9), kw("hôtel", 0.8),
				kw("partir", 0.7), kw("destination", 0.8),
				kw("santé", 1.0), kw("médecin", 1.0), kw("maladie", 1.0), kw("symptôme", 1.0),
				kw("rhume", 1.0), kw("soigner", 1.0), kw("guérir", 0.9), kw("traitement", 0.9),
				kw("travail", 0.7), kw("emploi", 0.8), kw("job", 0.8), kw("carrière", 0.8),
				kw("choisir", 0.6), kw("métier", 0.8),
				kw("école", 0.9), kw("université", 0.9), kw("étudiant", 0.8), kw("cours", 0.8),
				// technical
				kw("ordinateur", 0.8), kw("internet", 0.9), kw("wifi", 1.0), kw("password", 1.0),
				kw("mot de passe", 1.0), kw("réparer", 1.0), kw("installer", 1.0),
				kw("logiciel", 0.9), kw("application", 0.7), kw("téléphone", 0.7),
				kw("windows", 1.0), kw("système", 0.8),
				// entertainment
				kw("film", 0.9), kw("cinéma", 0.9), kw("série", 0.9), kw("musique", 0.9),
				kw("chanson", 0.9), kw("artiste", 0.8), kw("concert", 0.8),
				kw("recommande", 0.7), kw("recommandation", 0.7),
				// abstract
				kw("sens de la vie", 1.0), kw("bonheur", 0.8), kw("amour", 0.8),
				kw("philosophie", 1.0), kw("religion", 1.0), kw("dieu", 1.0),
				kw("penses-tu", 0.9), kw("opinion", 0.8), kw("crois-tu", 0.9),
				// open questions
				kw("pourquoi", 0.5), kw("comment faire", 0.7), kw("expliquer", 0.6),
				kw("parlez-moi", 0.8), kw("parle-moi", 0.8), kw("donne-moi", 0.7),
				kw("quelle est", 0.6), kw("quel est", 0.6), kw("qu'est-ce", 0.6),
			},
		},
		{
			Name:      IntentPersonalQuestion,
			Threshold: 0.4,
			Keywords: []Keyword{
				kw("ton âge", 1.0), kw("votre âge", 1.0), kw("quel âge", 0.8),
				kw("ton nom", 1.0), kw("votre nom", 1.0), kw("comment tu t'appelles", 1.0),
				kw("qui es-tu", 1.0), kw("qui êtes-vous", 1.0), kw("que fais-tu", 0.9),
				kw("d'où viens-tu", 1.0), kw("où habites-tu", 1.0),
				kw("es-tu humain", 1.0), kw("êtes-vous humain", 1.0), kw("robot", 0.8),
				kw("intelligence artificielle", 0.9), kw("ia", 0.8),
				kw("comment ça va", 0.9), kw("ça va", 0.7), kw("comment allez-vous", 0.9),
				kw("tu fais quoi", 0.9), kw("que faites-vous", 0.9),
			},
		},
		{
			Name:      IntentGreeting,
			Threshold: 0.7,
			Keywords: []Keyword{
				kw("bonjour", 1.0), kw("salut", 1.0), kw("hello", 1.0), kw("hi", 0.9),
				kw("bonsoir", 0.9), kw("hey", 0.8), kw("coucou", 0.8),
			},
		},
		{
			Name:      IntentFarewell,
			Threshold: 0.7,
			Keywords: []Keyword{
				kw("au revoir", 1.0), kw("bye", 1.0), kw("à bientôt", 0.9),
				kw("merci", 0.8), kw("tchao", 0.8), kw("salut", 0.6),
			},
		},
		{
			Name:      IntentProductSearch,
			Threshold: 0.3,
			Keywords: []Keyword{
				kw("cherche", 1.0), kw("veux", 1.0), kw("besoin", 1.0), kw("trouve", 0.9),
				kw("acheter", 0.9), kw("commander", 0.8), kw("voir", 0.7), kw("montrer", 0.7),
				kw("produit", 1.0), kw("article", 0.7), kw("quelque chose", 0.8),
				kw("je veux", 1.0), kw("je cherche", 1.0), kw("j'ai besoin", 1.0),
				kw("je veux un", 1.0), kw("je veux une", 1.0), kw("je cherche un", 1.0), kw("je cherche une", 1.0),
				kw("comme un", 0.8), kw("comme une", 0.8), kw("un produit", 1.0), kw("une produit", 1.0),
			},
		},
		{
			Name:      IntentGift,
			Threshold: 0.4,
			Keywords: []Keyword{
				kw("cadeau", 1.0), kw("offrir", 1.0), kw("gift", 1.0), kw("surprise", 0.9),
				kw("anniversaire", 0.8), kw("fête", 0.8), kw("noël", 0.8),
				kw("pour ma", 0.9), kw("pour mon", 0.9), kw("pour une", 0.9), kw("pour un", 0.9),
				kw("pour sa", 0.8), kw("pour son", 0.8), kw("pour leur", 0.8),
				kw("je veux un cadeau", 1.0), kw("je cherche un cadeau", 1.0),
				kw("cadeau a", 1.0), kw("cadeau à", 1.0), kw("comme un cadeau", 1.0),
			},
		},
		{
			Name:      IntentRecipientInfo,
			Threshold: 0.8,
			Keywords: []Keyword{
				kw("fille", 1.0), kw("garçon", 1.0), kw("femme", 1.0), kw("homme", 1.0),
				kw("enfant", 0.9), kw("bébé", 0.9), kw("ado", 0.8), kw("adulte", 0.8),
				kw("maman", 0.8), kw("papa", 0.8), kw("copain", 0.7), kw("copine", 0.7),
			},
		},
		{
			Name:      IntentBudgetInfo,
			Threshold: 0.6,
			Keywords: []Keyword{
				kw("budget", 1.0), kw("prix", 1.0), kw("coût", 0.9), kw("dépenser", 0.9),
				kw("maximum", 0.8), kw("pas cher", 0.8), kw("abordable", 0.7),
				kw("dt", 0.6), kw("dinar", 0.6), kw("euro", 0.5),
			},
		},
		{
			Name:      IntentColorPreference,
			Threshold: 0.8,
			Keywords: []Keyword{
				kw("rouge", 1.0), kw("bleu", 1.0), kw("vert", 1.0), kw("noir", 1.0),
				kw("blanc", 1.0), kw("rose", 1.0), kw("jaune", 1.0), kw("violet", 0.9),
				kw("orange", 0.9), kw("couleur", 0.8), kw("coloré", 0.7),
			},
		},
		{
			Name:      IntentAgeInfo,
			Threshold: 0.7,
			Keywords: []Keyword{
				kw("ans", 1.0), kw("âge", 1.0), kw("vieux", 0.8), kw("jeune", 0.8),
				kw("petit", 0.7), kw("grand", 0.7), kw("year", 0.9), kw("old", 0.8),
			},
		},
		{
			Name:      IntentHelpRequest,
			Threshold: 0.7,
			Keywords: []Keyword{
				kw("aide", 1.0), kw("help", 1.0), kw("comment", 0.9), kw("expliquer", 0.8),
				kw("comprendre", 0.8), kw("savoir", 0.7), kw("question", 0.7),
			},
		},
		{
			Name:      IntentCategoryPreference,
			Threshold: 0.6,
			Keywords: []Keyword{
				kw("casquette", 1.0), kw("bijoux", 1.0), kw("sac", 1.0), kw("vêtement", 1.0),
				kw("jouet", 1.0), kw("livre", 1.0), kw("montre", 1.0), kw("accessoire", 0.9),
				kw("décoration", 0.8), kw("sport", 0.8), kw("cuisine", 0.8),
				kw("pas cher", 0.8), kw("abordable", 0.7), kw("bon marché", 0.8),
			},
		},
	}
}
