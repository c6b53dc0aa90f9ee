package lint

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps rule IDs and segment type tags to rules. It is built once
// at startup and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]SegmentRule   // keyed by ID
	aliases map[string]string        // alias -> ID
	byType  map[string][]SegmentRule // crawl type -> rules in registration order
}

// NewRegistry creates a registry holding rules.
func NewRegistry(rules ...SegmentRule) (*Registry, error) {
	r := &Registry{
		rules:   make(map[string]SegmentRule),
		aliases: make(map[string]string),
		byType:  make(map[string][]SegmentRule),
	}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a rule. IDs and aliases are case-insensitive and must be
// unique across the registry.
func (r *Registry) Register(rule SegmentRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := strings.ToUpper(rule.ID())
	if _, taken := r.lookup(id); taken {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.ID())
	}
	for _, alias := range rule.Aliases() {
		if _, taken := r.lookup(strings.ToUpper(alias)); taken {
			return fmt.Errorf("%w: alias %s of %s", ErrDuplicateRule, alias, rule.ID())
		}
	}

	r.rules[id] = rule
	for _, alias := range rule.Aliases() {
		r.aliases[strings.ToUpper(alias)] = id
	}
	for _, typ := range rule.CrawlTypes() {
		r.byType[typ] = append(r.byType[typ], rule)
	}
	return nil
}

func (r *Registry) lookup(key string) (SegmentRule, bool) {
	if rule, ok := r.rules[key]; ok {
		return rule, true
	}
	if id, ok := r.aliases[key]; ok {
		return r.rules[id], true
	}
	return nil, false
}

// Get returns a rule by ID or alias.
func (r *Registry) Get(idOrAlias string) (SegmentRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(strings.ToUpper(idOrAlias))
}

// Resolve returns the canonical ID for an ID or alias.
func (r *Registry) Resolve(idOrAlias string) (string, bool) {
	rule, ok := r.Get(idOrAlias)
	if !ok {
		return "", false
	}
	return rule.ID(), true
}

// RulesForType returns the rules dispatched on a segment type.
func (r *Registry) RulesForType(typ string) []SegmentRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[typ]
}

// All returns every rule sorted by ID.
func (r *Registry) All() []SegmentRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]SegmentRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// Info returns metadata for every rule sorted by ID.
func (r *Registry) Info() []RuleInfo {
	all := r.All()
	infos := make([]RuleInfo, 0, len(all))
	for _, rule := range all {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

// GroupAll is the group every rule belongs to in addition to its own.
const GroupAll = "all"

// ByGroup returns the rules in a group sorted by ID. GroupAll returns
// every rule.
func (r *Registry) ByGroup(group string) []SegmentRule {
	if strings.EqualFold(group, GroupAll) {
		return r.All()
	}
	var rules []SegmentRule
	for _, rule := range r.All() {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Groups returns the distinct rule groups, sorted.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, rule := range r.All() {
		if !seen[rule.Group()] {
			seen[rule.Group()] = true
			groups = append(groups, rule.Group())
		}
	}
	sort.Strings(groups)
	return groups
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
