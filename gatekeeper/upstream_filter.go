package gatekeeper

import (
	"strings"
	"unicode"

	"gf-server/models"
	"gf-server/search"
)

// UpstreamFilter drops upstream places whose categories or names fall outside
// the gym domain. It runs before ranking and is independent of search.QualityFilter.
type UpstreamFilter struct {
	allowed  map[string]struct{}
	denied   map[string]struct{}
	keywords []string
}

// NewUpstreamFilter builds the filter from the rule table section.
func NewUpstreamFilter(cfg search.UpstreamFilter) *UpstreamFilter {
	f := &UpstreamFilter{
		allowed: toSet(cfg.AllowedTypes),
		denied:  toSet(cfg.DeniedTypes),
	}
	for _, k := range cfg.DeniedKeywords {
		if k = normalizeWords(k); k != "" {
			f.keywords = append(f.keywords, " "+k)
		}
	}
	return f
}

// Accept reports whether l is kept and, if not, why.
func (f *UpstreamFilter) Accept(l *models.RawListing) (bool, string) {
	types := make([]string, 0, len(l.Types)+1)
	if l.Type != "" {
		types = append(types, strings.ToLower(l.Type))
	}
	for _, t := range l.Types {
		types = append(types, strings.ToLower(t))
	}

	for _, t := range types {
		if _, ok := f.denied[t]; ok {
			return false, "denied_type"
		}
	}

	// Keywords match from the start of a word, so "shop" drops "Gym Shop"
	// and "Shopping" but not "Workshop".
	name := " " + normalizeWords(l.Name)
	for _, k := range f.keywords {
		if strings.Contains(name, k) {
			return false, "denied_keyword"
		}
	}

	if len(types) == 0 || len(f.allowed) == 0 {
		return true, ""
	}
	for _, t := range types {
		if _, ok := f.allowed[t]; ok {
			return true, ""
		}
	}
	return false, "not_allowed_type"
}

// Filter returns the accepted listings in input order.
func (f *UpstreamFilter) Filter(listings []models.RawListing) []models.RawListing {
	kept := make([]models.RawListing, 0, len(listings))
	for i := range listings {
		ok, reason := f.Accept(&listings[i])
		if !ok {
			UpstreamFilteredTotal.WithLabelValues(reason).Inc()
			continue
		}
		kept = append(kept, listings[i])
	}
	return kept
}

// normalizeWords lowercases s and joins its letter/digit runs with single spaces.
func normalizeWords(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
