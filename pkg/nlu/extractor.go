package nlu

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Go's \b only understands ASCII word characters, so "bébé" or "noël" would never
// match at a trailing boundary. Every pattern is wrapped with explicit Unicode
// boundaries and the value is read from the first capture group.
const (
	openBoundary  = `(?:^|[^\p{L}\p{N}_])`
	closeBoundary = `(?:$|[^\p{L}\p{N}_])`
)

// CheapBudget is the max price assumed for "pas cher" style requests.
const CheapBudget = 30.0

type vocabulary struct {
	value string
	terms []string
}

// termMatcher finds the first vocabulary term in a message and maps it back to
// its canonical value. Plural s/x endings are tolerated.
type termMatcher struct {
	re     *regexp.Regexp
	lookup map[string]string
}

func newTermMatcher(vocab []vocabulary) *termMatcher {
	lookup := make(map[string]string)
	var terms []string
	for _, v := range vocab {
		for _, t := range v.terms {
			lookup[t] = v.value
			terms = append(terms, t)
		}
	}
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	pattern := openBoundary + `(` + strings.Join(quoted, "|") + `)(?:s|x)?` + closeBoundary
	return &termMatcher{re: regexp.MustCompile(pattern), lookup: lookup}
}

func (m *termMatcher) find(message string) *string {
	match := m.re.FindStringSubmatch(message)
	if match == nil {
		return nil
	}
	if value, ok := m.lookup[match[1]]; ok {
		return &value
	}
	return nil
}

var (
	ageRangePattern = regexp.MustCompile(openBoundary + `(?:entre|from)\s*(\d+)\s*(?:et|and|to)\s*(\d+)\s*(?:ans|an|years|year)` + closeBoundary)
	agePattern      = regexp.MustCompile(openBoundary + `(\d+)\s*(?:ans|an|years|year)` + closeBoundary)

	pricePattern  = regexp.MustCompile(openBoundary + `(\d+(?:[.,]\d+)?)\s*(?:dt|dinars|dinar|euros|euro|€)` + closeBoundary)
	budgetPattern = regexp.MustCompile(openBoundary + `(?:budget|prix|coût|cout)\s*(?:de|:|est de)?\s*(\d+(?:[.,]\d+)?)` + closeBoundary)
	ceilPattern   = regexp.MustCompile(openBoundary + `(?:maximum|max|moins de|jusqu'à|jusqu'a)\s*(?:de\s*)?(\d+(?:[.,]\d+)?)` + closeBoundary)
	cheapPattern  = regexp.MustCompile(openBoundary + `(pas cher|économique|abordable|petit prix|bon marché)` + closeBoundary)

	colorMatcher = newTermMatcher([]vocabulary{
		{"rouge", []string{"rouge", "red", "bordeaux", "cerise"}},
		{"bleu", []string{"bleu", "bleue", "blue", "marine", "turquoise"}},
		{"vert", []string{"vert", "verte", "green", "kaki"}},
		{"noir", []string{"noir", "noire", "black"}},
		{"blanc", []string{"blanc", "blanche", "white", "ivoire"}},
		{"rose", []string{"rose", "pink", "fuchsia"}},
		{"jaune", []string{"jaune", "yellow", "doré", "dorée"}},
		{"violet", []string{"violet", "violette", "purple"}},
		{"orange", []string{"orange"}},
	})

	recipientMatcher = newTermMatcher([]vocabulary{
		{"fille", []string{"fille", "fillette"}},
		{"garçon", []string{"garçon", "fils"}},
		{"femme", []string{"femme", "maman", "mère"}},
		{"homme", []string{"homme", "papa", "père"}},
		{"enfant", []string{"enfant"}},
		{"bébé", []string{"bébé"}},
	})

	categoryMatcher = newTermMatcher([]vocabulary{
		{"casquette", []string{"casquette", "cap", "chapeau"}},
		{"bijoux", []string{"bijoux", "bijou", "bracelet", "collier", "bague", "pendentif"}},
		{"sac", []string{"sac", "pochette", "cartable"}},
		{"vêtement", []string{"vêtement", "t-shirt", "tshirt", "pull", "pantalon", "robe", "chemise"}},
		{"jouet", []string{"jouet", "peluche", "poupée", "voiture", "ballon"}},
		{"livre", []string{"livre", "coloriage", "puzzle"}},
		{"montre", []string{"montre", "watch"}},
		{"décoration", []string{"décoration", "déco"}},
	})

	occasionMatcher = newTermMatcher([]vocabulary{
		{"cadeau", []string{"cadeau", "gift", "offrir", "surprise", "anniversaire", "fête", "noël"}},
		{"travail", []string{"travail", "bureau", "boulot", "professionnel"}},
		{"sport", []string{"sport", "gym", "fitness", "jogging"}},
		{"quotidien", []string{"quotidien", "casual", "décontracté", "tous les jours"}},
	})
)

// Extract reads every slot it can find from a normalized message. It never
// fails: patterns that do not match leave their slot nil. When a slot matches
// more than once the first match wins.
func Extract(normalized string) Slots {
	return Slots{
		Age:       extractAge(normalized),
		MaxPrice:  extractPrice(normalized),
		Color:     colorMatcher.find(normalized),
		Recipient: recipientMatcher.find(normalized),
		Category:  categoryMatcher.find(normalized),
		Occasion:  occasionMatcher.find(normalized),
	}
}

func extractAge(msg string) *int {
	if m := ageRangePattern.FindStringSubmatch(msg); m != nil {
		low, errLow := strconv.Atoi(m[1])
		high, errHigh := strconv.Atoi(m[2])
		if errLow == nil && errHigh == nil {
			mid := (low + high) / 2
			return &mid
		}
	}
	if m := agePattern.FindStringSubmatch(msg); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			return &age
		}
	}
	return nil
}

func extractPrice(msg string) *float64 {
	for _, re := range []*regexp.Regexp{pricePattern, budgetPattern, ceilPattern} {
		if m := re.FindStringSubmatch(msg); m != nil {
			if price, ok := parseAmount(m[1]); ok {
				return &price
			}
		}
	}
	if cheapPattern.MatchString(msg) {
		price := CheapBudget
		return &price
	}
	return nil
}

func parseAmount(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
