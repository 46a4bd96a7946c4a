package extension

import (
	"fmt"

	"github.com/gobwas/glob"
)

// AnonymousFunction is the sentinel recorded for frames without a function
// name.
const AnonymousFunction = "(anonymous function)"

// StackFrame is one call-site record in a captured call stack. Line and
// column are 1-based.
type StackFrame struct {
	Source   string `json:"source"`
	Function string `json:"function"`
	Line     uint   `json:"line"`
	Column   uint   `json:"column"`
}

// NewStackFrame builds a frame, substituting the anonymous sentinel for an
// empty function name.
func NewStackFrame(source, function string, line, column uint) StackFrame {
	if function == "" {
		function = AnonymousFunction
	}
	return StackFrame{Source: source, Function: function, Line: line, Column: column}
}

// StackTrace is the ordered frame sequence attached to a runtime error,
// outermost call last.
type StackTrace []StackFrame

// DefaultInternalFramePatterns matches the API-dispatch shim sources the
// renderer injects around extension code (e.g. "extensions::event_bindings",
// "extensions::schemaUtils").
var DefaultInternalFramePatterns = []string{"extensions::*"}

// FrameClassifier decides which frames belong to user-authored extension
// code. A frame whose source matches any internal pattern is stripped before
// a runtime error is constructed, which is why stored traces are frequently
// much shorter than the raw runtime stack. The pattern table is configuration
// rather than code since the set of shim sources evolves.
type FrameClassifier struct {
	patterns []glob.Glob
}

// NewFrameClassifier compiles the given glob patterns. An empty slice keeps
// every frame.
func NewFrameClassifier(patterns []string) (*FrameClassifier, error) {
	c := &FrameClassifier{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid internal frame pattern %q: %v", p, err)
		}
		c.patterns = append(c.patterns, g)
	}
	return c, nil
}

// DefaultFrameClassifier returns a classifier with the default pattern table.
func DefaultFrameClassifier() *FrameClassifier {
	c, err := NewFrameClassifier(DefaultInternalFramePatterns)
	if err != nil {
		panic(err) // default patterns must compile
	}
	return c
}

// IsInternal reports whether a frame source belongs to internal shim code.
func (c *FrameClassifier) IsInternal(source string) bool {
	for _, g := range c.patterns {
		if g.Match(source) {
			return true
		}
	}
	return false
}

// Filter returns the frames attributed to user-authored extension code, in
// their original order. Pure: the input trace is not modified.
func (c *FrameClassifier) Filter(trace StackTrace) StackTrace {
	filtered := make(StackTrace, 0, len(trace))
	for _, f := range trace {
		if !c.IsInternal(f.Source) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
