package lsp

import (
	"encoding/json"
)

// handleFormatting handles textDocument/formatting by running the fix loop
// over the whole document.
func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}

	s.sendResponse(msg.ID, s.fixAllEdits(doc), nil)
	return nil
}

// fixAllEdits returns a single edit replacing the document with its fixed
// source, or no edits when nothing changes or the document does not parse.
func (s *Server) fixAllEdits(doc *Document) []TextEdit {
	if !doc.IsSQL() {
		return []TextEdit{}
	}

	result, err := s.linter.Fix(doc.Content)
	if err != nil {
		s.logger.Debug("Fix skipped", "uri", doc.URI, "error", err)
		return []TextEdit{}
	}
	if !result.Changed {
		return []TextEdit{}
	}

	return []TextEdit{{
		Range:   Range{Start: Position{}, End: doc.End()},
		NewText: result.Source,
	}}
}
