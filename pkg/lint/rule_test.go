package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

// mockSegmentRule implements SegmentRule for testing
type mockSegmentRule struct {
	id          string
	name        string
	group       string
	aliases     []string
	description string
	severity    Severity
	configKeys  []string
	crawl       []string
	eval        EvalFunc
}

func (m *mockSegmentRule) ID() string                { return m.id }
func (m *mockSegmentRule) Name() string              { return m.name }
func (m *mockSegmentRule) Group() string             { return m.group }
func (m *mockSegmentRule) Aliases() []string         { return m.aliases }
func (m *mockSegmentRule) Description() string       { return m.description }
func (m *mockSegmentRule) DefaultSeverity() Severity { return m.severity }
func (m *mockSegmentRule) ConfigKeys() []string      { return m.configKeys }
func (m *mockSegmentRule) CrawlTypes() []string      { return m.crawl }

// Documentation methods (return empty for mocks)
func (m *mockSegmentRule) Rationale() string   { return "" }
func (m *mockSegmentRule) BadExample() string  { return "" }
func (m *mockSegmentRule) GoodExample() string { return "" }
func (m *mockSegmentRule) Fix() string         { return "" }

func (m *mockSegmentRule) Eval(ctx *RuleContext) ([]Result, error) {
	if m.eval == nil {
		return nil, nil
	}
	return m.eval(ctx)
}

func TestSegmentRuleInterface(t *testing.T) {
	rule := &mockSegmentRule{
		id:          "TST01",
		name:        "test-rule",
		group:       "testing",
		description: "A test rule",
		severity:    SeverityWarning,
		configKeys:  []string{"max_count"},
		crawl:       []string{segment.TypeKeyword},
	}

	// Verify it implements Rule interface
	var _ Rule = rule

	// Verify it implements SegmentRule interface
	var _ SegmentRule = rule

	assert.Equal(t, "TST01", rule.ID())
	assert.Equal(t, "test-rule", rule.Name())
	assert.Equal(t, "testing", rule.Group())
	assert.Equal(t, "A test rule", rule.Description())
	assert.Equal(t, SeverityWarning, rule.DefaultSeverity())
	assert.Equal(t, []string{"max_count"}, rule.ConfigKeys())
	assert.Equal(t, []string{segment.TypeKeyword}, rule.CrawlTypes())

	results, err := rule.Eval(&RuleContext{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetRuleInfo(t *testing.T) {
	rule := &mockSegmentRule{
		id:          "TST01",
		name:        "test-rule",
		group:       "testing",
		aliases:     []string{"T001"},
		description: "A test rule",
		severity:    SeverityWarning,
		configKeys:  []string{"opt1"},
		crawl:       []string{segment.TypeSetOperator},
	}

	info := GetRuleInfo(rule)

	assert.Equal(t, "TST01", info.ID)
	assert.Equal(t, "test-rule", info.Name)
	assert.Equal(t, "testing", info.Group)
	assert.Equal(t, []string{"T001"}, info.Aliases)
	assert.Equal(t, "A test rule", info.Description)
	assert.Equal(t, SeverityWarning, info.DefaultSeverity)
	assert.Equal(t, []string{"opt1"}, info.ConfigKeys)
	assert.Equal(t, []string{segment.TypeSetOperator}, info.CrawlTypes)
	assert.Equal(t, BuildDocURL("TST01"), info.DocURL)
}

func TestWrapRuleDef(t *testing.T) {
	def := RuleDef{
		ID:          "WRAP01",
		Name:        "wrapped-rule",
		Group:       "wrapper",
		Aliases:     []string{"W001"},
		Description: "A wrapped rule",
		Severity:    SeverityInfo,
		ConfigKeys:  []string{"key1", "key2"},
		CrawlTypes:  []string{segment.TypeKeyword},
		Impact:      ImpactMedium,
		Rationale:   "why",
		BadExample:  "bad",
		GoodExample: "good",
		Fix:         "fix",
		Eval: func(ctx *RuleContext) ([]Result, error) {
			return []Result{{Anchor: ctx.Segment, Description: "test"}}, nil
		},
	}

	wrapped := WrapRuleDef(def)

	assert.Equal(t, "WRAP01", wrapped.ID())
	assert.Equal(t, "wrapped-rule", wrapped.Name())
	assert.Equal(t, "wrapper", wrapped.Group())
	assert.Equal(t, []string{"W001"}, wrapped.Aliases())
	assert.Equal(t, "A wrapped rule", wrapped.Description())
	assert.Equal(t, SeverityInfo, wrapped.DefaultSeverity())
	assert.Equal(t, []string{"key1", "key2"}, wrapped.ConfigKeys())
	assert.Equal(t, []string{segment.TypeKeyword}, wrapped.CrawlTypes())
	assert.Equal(t, "why", wrapped.Rationale())
	assert.Equal(t, "bad", wrapped.BadExample())
	assert.Equal(t, "good", wrapped.GoodExample())
	assert.Equal(t, "fix", wrapped.Fix())
	assert.Equal(t, ImpactMedium.Int(), impactOf(wrapped))

	// Eval delegates to the wrapped function
	seg := &segment.Segment{Type: segment.TypeKeyword, Raw: "SELECT"}
	results, err := wrapped.Eval(&RuleContext{Segment: seg})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Same(t, seg, results[0].Anchor)
	assert.Equal(t, "test", results[0].Description)
}

func TestWrapRuleDef_NilEval(t *testing.T) {
	results, err := WrapRuleDef(RuleDef{ID: "NIL01"}).Eval(&RuleContext{})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestWrapRuleDef_Unwrap(t *testing.T) {
	def := RuleDef{
		ID:   "UNWRAP01",
		Name: "unwrap-test",
	}

	wrapped := WrapRuleDef(def)

	// Cast to access Unwrap method
	w, ok := wrapped.(*wrappedRuleDef)
	require.True(t, ok)

	unwrapped := w.Unwrap()
	assert.Equal(t, "UNWRAP01", unwrapped.ID)
	assert.Equal(t, "unwrap-test", unwrapped.Name)
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
		ok    bool
	}{
		{input: "error", want: SeverityError, ok: true},
		{input: "WARNING", want: SeverityWarning, ok: true},
		{input: "warn", want: SeverityWarning, ok: true},
		{input: " info ", want: SeverityInfo, ok: true},
		{input: "hint", want: SeverityHint, ok: true},
		{input: "fatal", want: SeverityWarning, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "unknown", Severity(42).String())

	text, err := SeverityHint.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hint", string(text))

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("error")))
	assert.Equal(t, SeverityError, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))
}

func TestBuildDocURL(t *testing.T) {
	t.Cleanup(ResetDocsBaseURL)

	assert.Equal(t, DefaultDocsBaseURL+"#rule-lt11", BuildDocURL("LT11"))

	SetDocsBaseURL("http://localhost:8000/rules/")
	assert.Equal(t, "http://localhost:8000/rules#rule-lt11", BuildDocURL("LT11"))
}
