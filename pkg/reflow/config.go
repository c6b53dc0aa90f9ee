package reflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

// LinePosition says where line breaks belong around a segment type.
type LinePosition string

// Line positions.
const (
	// LinePositionAlone requires a line break before and after.
	LinePositionAlone LinePosition = "alone"
	// LinePositionLeading requires a line break before (the segment leads its line).
	LinePositionLeading LinePosition = "leading"
	// LinePositionTrailing requires a line break after (the segment ends its line).
	LinePositionTrailing LinePosition = "trailing"
	// LinePositionNone places no requirement.
	LinePositionNone LinePosition = "none"
)

// Indent units.
const (
	IndentUnitSpace = "space"
	IndentUnitTab   = "tab"
)

// breakBefore reports whether the position requires a break before the segment.
func (p LinePosition) breakBefore() bool {
	return p == LinePositionAlone || p == LinePositionLeading
}

// breakAfter reports whether the position requires a break after the segment.
func (p LinePosition) breakAfter() bool {
	return p == LinePositionAlone || p == LinePositionTrailing
}

// IsValid reports whether p is a known line position.
func (p LinePosition) IsValid() bool {
	switch p {
	case LinePositionAlone, LinePositionLeading, LinePositionTrailing, LinePositionNone:
		return true
	default:
		return false
	}
}

// TypeConfig holds layout settings for one segment type.
type TypeConfig struct {
	LinePosition LinePosition `koanf:"line_position" json:"line_position" yaml:"line_position"`
}

// Config holds the layout settings the reflow subsystem works from.
type Config struct {
	IndentUnit   string                `koanf:"indent_unit" json:"indent_unit" yaml:"indent_unit"`
	TabSpaceSize int                   `koanf:"tab_space_size" json:"tab_space_size" yaml:"tab_space_size"`
	Types        map[string]TypeConfig `koanf:"types" json:"types" yaml:"types"`
}

// DefaultConfig returns the default layout: four-space indents and set
// operators alone on their line.
func DefaultConfig() Config {
	return Config{
		IndentUnit:   IndentUnitSpace,
		TabSpaceSize: 4,
		Types: map[string]TypeConfig{
			segment.TypeSetOperator: {LinePosition: LinePositionAlone},
		},
	}
}

// Validate checks the configuration for unknown values.
func (c Config) Validate() error {
	switch c.IndentUnit {
	case "", IndentUnitSpace, IndentUnitTab:
	default:
		return fmt.Errorf("invalid indent_unit %q: expected %q or %q", c.IndentUnit, IndentUnitSpace, IndentUnitTab)
	}
	if c.TabSpaceSize < 0 {
		return fmt.Errorf("invalid tab_space_size %d: must not be negative", c.TabSpaceSize)
	}

	types := make([]string, 0, len(c.Types))
	for typ := range c.Types {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		if pos := c.Types[typ].LinePosition; pos != "" && !pos.IsValid() {
			return fmt.Errorf("invalid line_position %q for %s: expected one of alone, leading, trailing, none", pos, typ)
		}
	}
	return nil
}

// LinePositionFor returns the configured line position of a segment type.
// Types without configuration get LinePositionNone.
func (c Config) LinePositionFor(typ string) LinePosition {
	if tc, ok := c.Types[typ]; ok && tc.LinePosition != "" {
		return tc.LinePosition
	}
	return LinePositionNone
}

// IndentString returns the whitespace for the given indent depth.
func (c Config) IndentString(depth int) string {
	if depth <= 0 {
		return ""
	}
	if c.IndentUnit == IndentUnitTab {
		return strings.Repeat("\t", depth)
	}
	size := c.TabSpaceSize
	if size == 0 {
		size = 4
	}
	return strings.Repeat(" ", depth*size)
}

// Merge returns c with every non-zero field of o applied on top.
func (c Config) Merge(o Config) Config {
	out := Config{
		IndentUnit:   c.IndentUnit,
		TabSpaceSize: c.TabSpaceSize,
		Types:        make(map[string]TypeConfig, len(c.Types)+len(o.Types)),
	}
	for typ, tc := range c.Types {
		out.Types[typ] = tc
	}
	if o.IndentUnit != "" {
		out.IndentUnit = o.IndentUnit
	}
	if o.TabSpaceSize != 0 {
		out.TabSpaceSize = o.TabSpaceSize
	}
	for typ, tc := range o.Types {
		if tc.LinePosition != "" {
			out.Types[typ] = tc
		}
	}
	return out
}
