// Package layout contains rules about line breaks and indentation.
package layout
