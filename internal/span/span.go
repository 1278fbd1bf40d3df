package span

import "fmt"

// Kind identifies what a region of input text contains. The render
// boundary switches exhaustively over these values.
type Kind int

const (
	KindText Kind = iota
	KindSmiles
	KindHeading
	KindMath
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSmiles:
		return "smiles"
	case KindHeading:
		return "heading"
	case KindMath:
		return "math"
	case KindEnvironment:
		return "environment"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Span is one classified region of the original text.
// Invariant: 0 <= Start < End <= len(text) and Content == text[Start:End].
type Span struct {
	Start   int
	End     int
	Content string
	Kind    Kind
}

// Contains reports whether s fully contains other's [Start, End) range.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two ranges share at least one position.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Category is the fragment classifier's verdict for one delimited
// candidate string. The ordering of the declarations mirrors the rule
// priority: earlier categories are decided first.
type Category int

const (
	CategoryEnvironment Category = iota
	CategoryBlockMath
	CategorySmallVariable
	CategoryInlineMath
	CategorySimpleVariable
	CategorySelectiveMath
	CategoryPlainText
)

func (c Category) String() string {
	switch c {
	case CategoryEnvironment:
		return "environment"
	case CategoryBlockMath:
		return "block_math"
	case CategorySmallVariable:
		return "small_variable"
	case CategoryInlineMath:
		return "inline_math"
	case CategorySimpleVariable:
		return "simple_variable"
	case CategorySelectiveMath:
		return "selective_math"
	case CategoryPlainText:
		return "plain_text"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// IsMath reports whether spans with this verdict are emitted as math.
// Simple and small variables render as styled text, and plain text
// renders literally, so none of those count.
func (c Category) IsMath() bool {
	switch c {
	case CategoryBlockMath, CategoryInlineMath, CategorySelectiveMath:
		return true
	}
	return false
}

// ListItem is one element of an expanded list environment. Term is
// non-empty only for description environments with a [term] prefix.
type ListItem struct {
	Term string
	Body string
}
