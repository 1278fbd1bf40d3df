package latex

import (
	"fmt"
	"regexp"
)

// ValidationError reports input that was rejected before any span
// processing. It is a content problem, not a parse failure: the
// segmentation core itself never errors.
type ValidationError struct {
	Primitive string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content validation failed: disallowed LaTeX primitive %q", e.Primitive)
}

// File inclusion and low-level I/O primitives. Rendering input has no
// business touching the filesystem or the TeX token machinery. The I/O
// primitives take a stream number directly after the name, so they get
// their own alternative.
var disallowedPrimitives = regexp.MustCompile(
	`\\(input|include|InputIfFileExists|immediate|csname|catcode|special)\b|\\(write|read|openin|openout)\d*\b`)

// CheckContent rejects whole inputs that contain a disallowed LaTeX
// primitive. A nil return means the text is safe to segment.
func CheckContent(text string) error {
	m := disallowedPrimitives.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	name := m[1]
	if name == "" {
		name = m[2]
	}
	return &ValidationError{Primitive: `\` + name}
}
