package lsp

import (
	"errors"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
	"github.com/CommonCrisis/sqlfluff/pkg/parser"
)

const (
	diagnosticSource = "sqlfluff"

	// parseErrorCode labels diagnostics for documents that failed to parse.
	parseErrorCode = "PRS"
)

// publishDiagnostics lints the document and publishes the result,
// replacing whatever was published for it before.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := []Diagnostic{}
	if doc.IsSQL() {
		diagnostics = s.lintDocument(doc)
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// lintDocument lints doc, caches the fixes of its findings and returns
// them as LSP diagnostics. A parse failure becomes a single error.
func (s *Server) lintDocument(doc *Document) []Diagnostic {
	s.fixes.clearURI(doc.URI)

	found, err := s.linter.LintString(doc.Content)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			pos := doc.TokenPosition(perr.Pos)
			return []Diagnostic{{
				Range:    Range{Start: pos, End: pos},
				Severity: DiagnosticSeverityError,
				Code:     parseErrorCode,
				Source:   diagnosticSource,
				Message:  perr.Message,
			}}
		}
		s.logger.Error("Lint failed", "uri", doc.URI, "error", err)
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeError,
			Message: "sqlfluff: " + err.Error(),
		})
		return []Diagnostic{}
	}

	diagnostics := make([]Diagnostic, 0, len(found))
	for _, d := range found {
		diag := convertDiagnostic(doc, d)
		if len(d.Fixes) > 0 {
			s.fixes.cacheFixes(doc.URI, diag, d.Fixes)
		}
		diagnostics = append(diagnostics, diag)
	}
	s.logger.Debug("Linted", "uri", doc.URI, "diagnostics", len(diagnostics))
	return diagnostics
}

// convertDiagnostic converts a lint finding into an LSP diagnostic.
func convertDiagnostic(doc *Document, d lint.Diagnostic) Diagnostic {
	start := doc.TokenPosition(d.Pos)
	end := start
	if d.EndPos.IsValid() {
		end = doc.TokenPosition(d.EndPos)
	}

	diag := Diagnostic{
		Range:    Range{Start: start, End: end},
		Severity: convertSeverity(d.Severity),
		Code:     d.RuleID,
		Source:   diagnosticSource,
		Message:  d.Message,
	}
	if d.DocumentationURL != "" {
		diag.CodeDescription = &CodeDescription{Href: d.DocumentationURL}
	}
	return diag
}

// convertSeverity maps lint severities onto LSP severities.
func convertSeverity(sev lint.Severity) DiagnosticSeverity {
	switch sev {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityHint
	}
}
