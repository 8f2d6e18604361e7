package engine

import (
	"strings"
	"svim/internal/domains/availability/model"
	"unicode/utf8"
)

const (
	DefaultMaxCandidates = 10
	minScoredTokenLength = 3
)

type MatchKind string

const (
	MatchNone     MatchKind = ""
	MatchByID     MatchKind = "id"
	MatchExact    MatchKind = "exact"
	MatchContains MatchKind = "contains"
	MatchTokens   MatchKind = "tokens"
)

// Resolution is either a single service or, when Service is nil, the candidates to offer back.
type Resolution struct {
	Service    *model.Service
	Match      MatchKind
	Candidates []model.Service
}

func (r Resolution) Resolved() bool {
	return r.Service != nil
}

// ResolveService picks one service from the catalog. An id that is not in the catalog falls through to the term.
// Term matching tries, in order: exact match, containment (shortest name wins) and token overlap
// (highest score, then shortest name). Ties that survive keep catalog order.
func ResolveService(services []model.Service, id *int64, term string, maxCandidates int) Resolution {
	if id != nil {
		for i := range services {
			if services[i].ID == *id {
				return Resolution{Service: &services[i], Match: MatchByID}
			}
		}
	}

	if strings.TrimSpace(term) != "" {
		if service, kind := resolveTerm(services, term); service != nil {
			return Resolution{Service: service, Match: kind}
		}
	}

	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	candidates := services[:min(len(services), maxCandidates)]

	return Resolution{Match: MatchNone, Candidates: append([]model.Service(nil), candidates...)}
}

func resolveTerm(services []model.Service, term string) (*model.Service, MatchKind) {
	query := matchKey(NormalizeTerm(term))
	names := make([]string, len(services))

	for i := range services {
		names[i] = matchKey(services[i].Name)

		if names[i] == query {
			return &services[i], MatchExact
		}
	}

	best := -1
	for i := range services {
		if !strings.Contains(names[i], query) {
			continue
		}

		if best < 0 || nameLength(services[i]) < nameLength(services[best]) {
			best = i
		}
	}

	if best >= 0 {
		return &services[best], MatchContains
	}

	tokens := []string{}
	for _, token := range strings.Fields(query) {
		if utf8.RuneCountInString(token) >= minScoredTokenLength {
			tokens = append(tokens, token)
		}
	}

	bestScore := 0
	for i := range services {
		score := 0

		for _, token := range tokens {
			if strings.Contains(names[i], token) {
				score++
			}
		}

		if score == 0 {
			continue
		}

		if score > bestScore || (score == bestScore && nameLength(services[i]) < nameLength(services[best])) {
			best, bestScore = i, score
		}
	}

	if best >= 0 {
		return &services[best], MatchTokens
	}

	return nil, MatchNone
}

func nameLength(service model.Service) int {
	return utf8.RuneCountInString(service.Name)
}
