package segment

// Node is a plain, encodable view of a segment used by the parse command's
// YAML and JSON output.
type Node struct {
	Type     string `json:"type" yaml:"type"`
	Raw      string `json:"raw,omitempty" yaml:"raw,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export converts the tree rooted at s into Nodes. Raw text is only kept on
// leaves; composites can be rebuilt from their children.
func Export(s *Segment) Node {
	n := Node{Type: s.Type, Line: s.Pos.Line, Column: s.Pos.Column}
	if s.IsRaw() {
		n.Raw = s.Raw
		return n
	}
	n.Children = make([]Node, 0, len(s.Children))
	for _, c := range s.Children {
		n.Children = append(n.Children, Export(c))
	}
	return n
}
