// Package latex implements the lenient LaTeX recognizers used by the
// content scanner: environment pairing, fragment classification, and
// input content validation. Everything here is total over string input;
// malformed LaTeX produces "no match", never an error.
package latex

import (
	"regexp"

	"github.com/scitextlab/scirender/internal/span"
)

var envTagPattern = regexp.MustCompile(`\\(begin|end)\{([a-zA-Z]+\*?)\}`)

type envTag struct {
	isBegin bool
	name    string
	start   int
	end     int
}

// MatchEnvironments returns the top-level \begin{name}...\end{name}
// spans in text, sorted by start. Nested environments are included
// verbatim in their parent's content and not emitted separately.
//
// Matching is lenient: an \end whose name does not match the innermost
// open \begin is ignored, and unterminated \begins emit nothing. As a
// consequence, interleaved environments (begin A, begin B, end A,
// end B) emit zero spans.
func MatchEnvironments(text string) []span.Span {
	matches := envTagPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]envTag, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, envTag{
			isBegin: text[m[2]:m[3]] == "begin",
			name:    text[m[4]:m[5]],
			start:   m[0],
			end:     m[1],
		})
	}

	var spans []span.Span
	var stack []envTag
	for _, tag := range tags {
		if tag.isBegin {
			stack = append(stack, tag)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].name != tag.name {
			// Mismatched end tag: ignore it rather than abort.
			continue
		}
		opener := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			spans = append(spans, span.Span{
				Start:   opener.start,
				End:     tag.end,
				Content: text[opener.start:tag.end],
				Kind:    span.KindEnvironment,
			})
		}
	}
	return spans
}

// EnvironmentName returns the name from a fragment's leading
// \begin{name} tag, or "" if the fragment does not start with one.
func EnvironmentName(fragment string) string {
	m := envTagPattern.FindStringSubmatchIndex(fragment)
	if m == nil || m[0] != 0 || fragment[m[2]:m[3]] != "begin" {
		return ""
	}
	return fragment[m[4]:m[5]]
}
