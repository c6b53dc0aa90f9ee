package lint

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the metadata interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "LT11"
	ID() string

	// Name returns the human-readable name, e.g., "layout.set_operators"
	Name() string

	// Group returns the category, e.g., "layout"
	Group() string

	// Aliases returns legacy identifiers that also select this rule.
	Aliases() []string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// SegmentRule is evaluated once per segment of the types it crawls.
type SegmentRule interface {
	Rule

	// CrawlTypes returns the segment type tags the rule is dispatched on.
	CrawlTypes() []string

	// Eval inspects ctx.Segment. An error aborts linting of the file.
	Eval(ctx *RuleContext) ([]Result, error)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the RuleContext.
type RuleDef struct {
	ID          string      // Unique identifier, e.g., "LT11"
	Name        string      // Human-readable name, e.g., "layout.set_operators"
	Group       string      // Category, e.g., "layout"
	Aliases     []string    // Legacy identifiers, e.g., "L065"
	Description string      // Human-readable description
	Severity    Severity    // Default severity
	CrawlTypes  []string    // Segment types the rule is dispatched on
	Eval        EvalFunc    // The check function
	ConfigKeys  []string    // Configuration keys this rule accepts
	Impact      ImpactLevel // Weight reported on diagnostics

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// EvalFunc evaluates one segment.
type EvalFunc func(ctx *RuleContext) ([]Result, error)

// RuleInfo provides metadata about a lint rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Aliases         []string `json:"aliases,omitempty"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	CrawlTypes      []string `json:"crawl_types,omitempty"`
	DocURL          string   `json:"doc_url"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Aliases:         r.Aliases(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		DocURL:          BuildDocURL(r.ID()),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
	if sr, ok := r.(SegmentRule); ok {
		info.CrawlTypes = sr.CrawlTypes()
	}
	return info
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement SegmentRule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the SegmentRule interface.
func WrapRuleDef(def RuleDef) SegmentRule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Aliases() []string         { return w.def.Aliases }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }
func (w *wrappedRuleDef) CrawlTypes() []string      { return w.def.CrawlTypes }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Eval(ctx *RuleContext) ([]Result, error) {
	if w.def.Eval == nil {
		return nil, nil
	}
	return w.def.Eval(ctx)
}

// Impact returns the impact score reported on diagnostics.
func (w *wrappedRuleDef) Impact() ImpactLevel {
	return w.def.Impact
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
