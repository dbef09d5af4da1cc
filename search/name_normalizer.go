package search

// NameNormalizer rewrites brand fragments to their canonical display casing.
type NameNormalizer struct {
	rules *Rules
}

func NewNameNormalizer(rules *Rules) *NameNormalizer {
	return &NameNormalizer{rules: rules}
}

// Normalize applies at most one rewrite: an exact correction if the name has
// one, otherwise the first matching brand rule.
func (n *NameNormalizer) Normalize(name string) string {
	for _, rule := range n.rules.rulesFor(ActionCorrect) {
		if name == rule.Pattern {
			return rule.Payload.Display
		}
	}
	for _, rule := range n.rules.rulesFor(ActionNormalize) {
		if rule.re.MatchString(name) {
			return rule.re.ReplaceAllLiteralString(name, rule.Payload.Display)
		}
	}
	return name
}
