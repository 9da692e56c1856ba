package diagram

import (
	"fmt"
	"strings"

	"archcanvas/internal/jsonutil"
)

// ParseError reports that no recoverable JSON object was found in a
// generation response. Raw carries the full response text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("diagram: no parseable JSON object in response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse extracts the diagram payload from a raw generation response. The
// model is not guaranteed to return bare JSON; surrounding prose and code
// fences are tolerated by slicing from the first '{' to the last '}'.
// Missing nodes/edges arrays come back as empty slices, not nil errors.
func Parse(raw string) (Payload, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return Payload{}, &ParseError{Raw: raw, Err: fmt.Errorf("no JSON object delimiters")}
	}
	var p Payload
	if err := jsonutil.UnmarshalFlex([]byte(raw[start:end+1]), &p); err != nil {
		return Payload{}, &ParseError{Raw: raw, Err: err}
	}
	if p.Nodes == nil {
		p.Nodes = []Node{}
	}
	if p.Edges == nil {
		p.Edges = []Edge{}
	}
	return p, nil
}
