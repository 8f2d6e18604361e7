package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stopWords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {}, "e": {}, "de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {}, "um": {}, "uma": {}, "com": {}, "por": {},
	"para": {}, "pra": {}, "meu": {}, "minha": {}, "quero": {}, "queria": {}, "gostaria": {},
	"fazer": {}, "marcar": {}, "agendar": {}, "horario": {}, "servico": {},
}

// aliases maps folded customer phrasing to the folded catalog wording.
var aliases = map[string]string{
	"progressiva":  "escova progressiva",
	"pe mao":       "manicure pedicure",
	"mao pe":       "manicure pedicure",
	"unha":         "manicure",
	"unhas":        "manicure",
	"sobrancelhas": "design sobrancelha",
	"luzes":        "mechas",
	"barba cabelo": "corte barba",
	"cabelo barba": "corte barba",
}

// fold strips diacritics, lowercases, splits on anything that is not a letter or digit
// and drops stop words. It may return an empty string.
func fold(value string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	plain, _, err := transform.String(stripper, value)
	if err != nil {
		plain = value
	}

	tokens := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}

		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// NormalizeTerm turns customer wording into the form used to match catalog names.
// It never returns an empty string for non-empty input: when every token is dropped the input is returned as is.
func NormalizeTerm(term string) string {
	folded := fold(term)
	if folded == "" {
		return term
	}

	if canonical, ok := aliases[folded]; ok {
		return canonical
	}

	return folded
}

// matchKey is the comparison form of a catalog name or a normalized term.
func matchKey(value string) string {
	if key := fold(value); key != "" {
		return key
	}

	return strings.ToLower(strings.TrimSpace(value))
}
