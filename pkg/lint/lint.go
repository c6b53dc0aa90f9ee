package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/segment"
	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// Errors returned by rules and the linter.
var (
	// ErrNoPosition is returned when a rule is asked to evaluate a segment
	// that carries no source position.
	ErrNoPosition = errors.New("segment has no position")
	// ErrRuleFailed wraps any error returned by a rule's Eval.
	ErrRuleFailed = errors.New("rule evaluation failed")
	// ErrDuplicateRule is returned when two rules share an ID or alias.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = sev
	return nil
}

// Result is what a rule reports for one segment: the anchor, a
// description, and the edits that would fix it.
type Result struct {
	Anchor      *segment.Segment
	Description string
	Fixes       []segment.Edit
}

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"` // end of the anchor segment
	Fixes    []Fix          `json:"fixes,omitempty"`

	// Edits holds the tree-anchored edits behind Fixes. They are only valid
	// against the source the diagnostic was produced from.
	Edits []segment.Edit `json:"-"`

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"`
	ImpactScore      int    `json:"impact_score,omitempty"` // 0-100
	AutoFixable      bool   `json:"auto_fixable"`
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string     `json:"description"`
	TextEdits   []TextEdit `json:"text_edits"`
}

// TextEdit represents a text replacement.
type TextEdit struct {
	Pos     token.Position `json:"pos"`
	EndPos  token.Position `json:"end_pos"`
	NewText string         `json:"new_text"`
}

// TextEdits converts tree-anchored edits into positioned text replacements.
func TextEdits(edits []segment.Edit) ([]TextEdit, error) {
	out := make([]TextEdit, 0, len(edits))
	for _, e := range edits {
		span, err := e.Range()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e, err)
		}
		text := e.NewText()
		if e.Kind == segment.EditDelete {
			text = ""
		}
		out = append(out, TextEdit{Pos: span.Start, EndPos: span.End, NewText: text})
	}
	return out, nil
}
