package lsp

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/CommonCrisis/sqlfluff/pkg/lint"
)

// cachedFix ties the fixes of one finding to the diagnostic published for it.
type cachedFix struct {
	code    string
	message string
	rng     Range
	fixes   []lint.Fix
}

// fixCache stores fixes for published diagnostics, keyed by URI.
type fixCache struct {
	mu    sync.RWMutex
	fixes map[string][]cachedFix
}

func newFixCache() *fixCache {
	return &fixCache{fixes: make(map[string][]cachedFix)}
}

// cacheFixes stores the fixes behind diag.
func (c *fixCache) cacheFixes(uri string, diag Diagnostic, fixes []lint.Fix) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fixes[uri] = append(c.fixes[uri], cachedFix{code: diag.Code, message: diag.Message, rng: diag.Range, fixes: fixes})
}

// getFixes returns the fixes cached for the diagnostic matching diag.
// LT11 reports both sides of an operator on the same range, so the
// message takes part in the match.
func (c *fixCache) getFixes(uri string, diag Diagnostic) []lint.Fix {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.fixes[uri] {
		if f.code == diag.Code && f.message == diag.Message && f.rng == diag.Range {
			return f.fixes
		}
	}
	return nil
}

// clearURI removes all cached fixes for a URI.
func (c *fixCache) clearURI(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fixes, uri)
}

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions returns a quick fix per fixable diagnostic in the request
// and, when the document has fixable findings, a fix-all source action.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}
	uri := params.TextDocument.URI
	doc := s.documents.Get(uri)
	if doc == nil {
		return actions
	}

	if wants(params.Context.Only, CodeActionKindQuickFix) {
		for _, diag := range params.Context.Diagnostics {
			fixes := s.fixes.getFixes(uri, diag)
			for _, fix := range fixes {
				actions = append(actions, CodeAction{
					Title:       fix.Description,
					Kind:        CodeActionKindQuickFix,
					Diagnostics: []Diagnostic{diag},
					IsPreferred: len(fixes) == 1, // Single fix is preferred
					Edit: &WorkspaceEdit{
						Changes: map[string][]TextEdit{
							uri: convertTextEdits(doc, fix.TextEdits),
						},
					},
				})
			}
		}
	}

	if wants(params.Context.Only, CodeActionKindSourceFixAll) {
		if edits := s.fixAllEdits(doc); len(edits) > 0 {
			actions = append(actions, CodeAction{
				Title: "Fix all sqlfluff issues",
				Kind:  CodeActionKindSourceFixAll,
				Edit: &WorkspaceEdit{
					Changes: map[string][]TextEdit{uri: edits},
				},
			})
		}
	}

	return actions
}

// wants reports whether kind passes the client's "only" filter.
func wants(only []CodeActionKind, kind CodeActionKind) bool {
	return len(only) == 0 || slices.Contains(only, kind)
}

// convertTextEdits converts lint.TextEdit to LSP TextEdit.
func convertTextEdits(doc *Document, edits []lint.TextEdit) []TextEdit {
	result := make([]TextEdit, len(edits))
	for i, edit := range edits {
		result[i] = TextEdit{
			Range: Range{
				Start: doc.TokenPosition(edit.Pos),
				End:   doc.TokenPosition(edit.EndPos),
			},
			NewText: edit.NewText,
		}
	}
	return result
}
