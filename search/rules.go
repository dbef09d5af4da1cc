package search

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// ErrInvalidRules is returned when a rule table cannot be used.
var ErrInvalidRules = errors.New("invalid listing rules")

type Action string

const (
	ActionPrice      Action = "price"
	ActionBlock      Action = "block"
	ActionMajorBrand Action = "major_brand"
	ActionExempt     Action = "exempt"
	ActionCorrect    Action = "correct"
	ActionNormalize  Action = "normalize"
)

type Payload struct {
	Monthly    float64 `yaml:"monthly,omitempty"`
	JoiningFee float64 `yaml:"joining_fee,omitempty"`
	Display    string  `yaml:"display,omitempty"`
}

// Rule is one entry of the ordered listing table.
type Rule struct {
	Pattern string  `yaml:"pattern"`
	Action  Action  `yaml:"action"`
	Payload Payload `yaml:"payload,omitempty"`

	re *regexp.Regexp
}

// UpstreamFilter is the category allow/deny list applied to upstream places.
type UpstreamFilter struct {
	AllowedTypes   []string `yaml:"allowed_types"`
	DeniedTypes    []string `yaml:"denied_types"`
	DeniedKeywords []string `yaml:"denied_keywords"`
}

// Rules is the single brand/blocklist table shared by every filter.
type Rules struct {
	ListingRules         []Rule         `yaml:"listing_rules"`
	PlaceholderAddresses []string       `yaml:"placeholder_addresses"`
	UpstreamFilter       UpstreamFilter `yaml:"upstream_filter"`

	byAction map[Action][]Rule
}

// DefaultRules parses the rule table compiled into the binary.
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRulesYAML)
}

// MustDefaultRules is DefaultRules for callers that cannot recover from a
// broken embedded table.
func MustDefaultRules() *Rules {
	r, err := DefaultRules()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRules reads a rule table from disk.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if err := r.index(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rules) index() error {
	r.byAction = make(map[Action][]Rule)
	for i, rule := range r.ListingRules {
		if strings.TrimSpace(rule.Pattern) == "" {
			return fmt.Errorf("%w: rule %d has an empty pattern", ErrInvalidRules, i)
		}
		switch rule.Action {
		case ActionPrice:
			if rule.Payload.Monthly <= 0 {
				return fmt.Errorf("%w: price rule %q needs a positive monthly price", ErrInvalidRules, rule.Pattern)
			}
			rule.Pattern = strings.ToLower(rule.Pattern)
		case ActionBlock, ActionMajorBrand, ActionExempt:
			rule.Pattern = strings.ToLower(rule.Pattern)
		case ActionCorrect:
			if rule.Payload.Display == "" {
				return fmt.Errorf("%w: correct rule %q needs a display name", ErrInvalidRules, rule.Pattern)
			}
		case ActionNormalize:
			if rule.Payload.Display == "" {
				return fmt.Errorf("%w: normalize rule %q needs a display name", ErrInvalidRules, rule.Pattern)
			}
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return fmt.Errorf("%w: normalize rule %q: %v", ErrInvalidRules, rule.Pattern, err)
			}
			rule.re = re
		default:
			return fmt.Errorf("%w: rule %q has unknown action %q", ErrInvalidRules, rule.Pattern, rule.Action)
		}
		r.ListingRules[i] = rule
		r.byAction[rule.Action] = append(r.byAction[rule.Action], rule)
	}
	return nil
}

// First returns the first rule of the given action whose pattern is a
// substring of the lowercased text.
func (r *Rules) First(action Action, text string) (Rule, bool) {
	if text == "" {
		return Rule{}, false
	}
	lower := strings.ToLower(text)
	for _, rule := range r.byAction[action] {
		if strings.Contains(lower, rule.Pattern) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Matches reports whether any rule of the given action matches text.
func (r *Rules) Matches(action Action, text string) bool {
	_, ok := r.First(action, text)
	return ok
}

// IsPlaceholderAddress reports whether address carries no usable location.
func (r *Rules) IsPlaceholderAddress(address, city string) bool {
	a := strings.ToLower(strings.TrimSpace(address))
	if a == "" {
		return true
	}
	if c := strings.ToLower(strings.TrimSpace(city)); c != "" && a == c {
		return true
	}
	for _, p := range r.PlaceholderAddresses {
		if a == strings.ToLower(p) {
			return true
		}
	}
	return false
}

func (r *Rules) rulesFor(action Action) []Rule {
	return r.byAction[action]
}
