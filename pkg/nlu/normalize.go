package nlu

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type contraction struct {
	from string
	to   string
	re   *regexp.Regexp
}

// Applied in order; "je veux" must be absorbed before "un produit" and friends.
var contractions = []contraction{
	{"j'ai besoin", "besoin", nil},
	{"je veux", "veux", nil},
	{"je cherche", "cherche", nil},
	{"pour ma", "pour", nil},
	{"pour mon", "pour", nil},
	{"cadeau a", "cadeau", nil},
	{"cadeau à", "cadeau", nil},
	{"comme un cadeau", "cadeau", nil},
	{"comme une cadeau", "cadeau", nil},
	{"un produit", "produit", nil},
	{"une produit", "produit", nil},
	{"le produit", "produit", nil},
	{"des produits", "produit", nil},
	{"ne depasse pas", "maximum", nil},
	{"ne dépasse pas", "maximum", nil},
	{"pas plus de", "maximum", nil},
	{"maximum de", "maximum", nil},
}

func init() {
	for i := range contractions {
		c := &contractions[i]
		c.re = regexp.MustCompile(`(^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(c.from) + `($|[^\p{L}\p{N}_])`)
	}
}

// fold replaces whole-phrase occurrences only, so "pour ma" leaves "pour maman"
// alone. Matches consume their boundary character, hence the loop for
// back-to-back phrases.
func (c contraction) fold(s string) string {
	for {
		next := c.re.ReplaceAllString(s, "${1}"+c.to+"${2}")
		if next == s {
			return s
		}
		s = next
	}
}

// Normalize lowercases the message, collapses whitespace and folds the common
// shopping contractions. Accented input is composed to NFC first so "é" typed
// as e + combining accent still matches the lexicon.
func Normalize(message string) string {
	s := strings.ToLower(norm.NFC.String(message))
	s = strings.Join(strings.Fields(s), " ")
	for _, c := range contractions {
		s = c.fold(s)
	}
	return s
}

func wordCount(normalized string) int {
	return len(strings.Fields(normalized))
}
