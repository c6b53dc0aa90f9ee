package output

// LintOutput is the JSON document written by `sqlfluff lint --format json`.
type LintOutput struct {
	Files   []LintFileResult `json:"files"`
	Summary LintSummary      `json:"summary"`
}

// LintFileResult holds the findings for one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one finding in JSON output.
type LintDiagnostic struct {
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
	Fixable   bool   `json:"fixable"`
	DocURL    string `json:"doc_url,omitempty"`
}

// LintSummary aggregates lint results.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
}

// FixOutput is the JSON document written by `sqlfluff fix --format json`.
type FixOutput struct {
	Files   []FixFileResult `json:"files"`
	Summary FixSummary      `json:"summary"`
}

// FixFileResult describes the fixes applied to one file.
type FixFileResult struct {
	Path      string `json:"path"`
	Changed   bool   `json:"changed"`
	Loops     int    `json:"loops"`
	Applied   int    `json:"applied"`
	Remaining int    `json:"remaining"`
}

// FixSummary aggregates fix results.
type FixSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	FilesFixed    int `json:"files_fixed"`
	FixesApplied  int `json:"fixes_applied"`
	Remaining     int `json:"remaining"`
}
