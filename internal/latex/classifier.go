package latex

import (
	"regexp"
	"strings"

	"github.com/scitextlab/scirender/internal/span"
)

// The classifier decides, for one delimited candidate string, whether it
// is math, a bare variable, an environment, or ordinary prose that
// happens to contain delimiters. The rules below are evaluated strictly
// in order and the first match wins; this list is the single authority
// for math-vs-prose disambiguation.

var (
	wholeEnvPattern   = regexp.MustCompile(`(?s)^\\begin\{([a-zA-Z]+\*?)\}(.*)\\end\{([a-zA-Z]+\*?)\}$`)
	doubleDollarBlock = regexp.MustCompile(`(?s)^\$\$(.*)\$\$$`)
	bracketBlock      = regexp.MustCompile(`(?s)^\\\[(.*)\\\]$`)
	parenInline       = regexp.MustCompile(`(?s)^\\\((.*)\\\)$`)
	singleDollar      = regexp.MustCompile(`(?s)^\$(.*)\$$`)

	smallVarShape  = regexp.MustCompile(`^[a-zA-Z_0-9]{1,3}$`)
	simpleVarShape = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,2}$`)
)

// Indicator patterns for single-dollar content: at least one must match
// for the fragment to be treated as math. Ordinary prose between stray
// dollar signs ("price is $10 and x$y") matches none of them.
var mathIndicators = []*regexp.Regexp{
	// Mathematical operator or symbol.
	regexp.MustCompile(`[+\-*/=<>|±×÷≤≥≠≈∞∂∑∏∫√·∈∉⊂⊃∪∩→⇒⇔∀∃]`),
	// Known function or command name.
	regexp.MustCompile(`\\(frac|sqrt|int|sum|prod|lim|sin|cos|tan|log|ln|exp|times|cup|cap|subset|supset|in|notin|forall|exists|therefore|propto)\b`),
	// Parenthesized expression containing an operator or comma.
	regexp.MustCompile(`\([^()]*[+\-*/=,][^()]*\)`),
	// Brace-delimited set containing a comma or equality.
	regexp.MustCompile(`\{[^{}]*[,=][^{}]*\}`),
	// Brace-delimited set containing a coordinate pair.
	regexp.MustCompile(`\{\s*\([^()]*,[^()]*\)\s*\}`),
	// Subscript or superscript marker.
	regexp.MustCompile(`[_^]`),
	// Chemical-formula-like token (H2, Ca_2, SO4).
	regexp.MustCompile(`[A-Z][a-z]?_?\d`),
	// Any backslash-prefixed command.
	regexp.MustCompile(`\\[a-zA-Z]+`),
	// Digits immediately adjacent to a letter.
	regexp.MustCompile(`\d[a-zA-Z]|[a-zA-Z]\d`),
	// Assignment shape: letter, equals, then a non-separator.
	regexp.MustCompile(`[a-zA-Z]=[^\s,;]`),
}

const smallVarDisallowed = `\{}^_`

var simpleVarDisallowed = []string{`\`, "{", "}", "^", "_", "frac", "+", "-", "*", "/", "=", "(", ")"}

type rule struct {
	name     string
	classify func(fragment string) (span.Category, string, bool)
}

var classifyRules = []rule{
	{"environment", classifyEnvironment},
	{"block-math", classifyBlockMath},
	{"small-variable", classifySmallVariable},
	{"inline-math", classifyInlineMath},
	{"simple-variable", classifySimpleVariable},
	{"selective-math", classifySelectiveMath},
}

// Classify maps one delimited candidate (delimiters included) to its
// category and extracted inner body. It never fails: fragments matching
// no rule come back as CategoryPlainText with the fragment itself as
// the body, dollar signs and all.
func Classify(fragment string) (span.Category, string) {
	for _, r := range classifyRules {
		if cat, body, ok := r.classify(fragment); ok {
			return cat, body
		}
	}
	return span.CategoryPlainText, fragment
}

func classifyEnvironment(fragment string) (span.Category, string, bool) {
	m := wholeEnvPattern.FindStringSubmatch(fragment)
	if m == nil || m[1] != m[3] {
		return 0, "", false
	}
	return span.CategoryEnvironment, strings.TrimSpace(m[2]), true
}

func classifyBlockMath(fragment string) (span.Category, string, bool) {
	if m := doubleDollarBlock.FindStringSubmatch(fragment); m != nil {
		return span.CategoryBlockMath, strings.TrimSpace(m[1]), true
	}
	if m := bracketBlock.FindStringSubmatch(fragment); m != nil {
		return span.CategoryBlockMath, strings.TrimSpace(m[1]), true
	}
	return 0, "", false
}

func classifySmallVariable(fragment string) (span.Category, string, bool) {
	m := parenInline.FindStringSubmatch(fragment)
	if m == nil {
		return 0, "", false
	}
	inner := strings.TrimSpace(m[1])
	if !smallVarShape.MatchString(inner) {
		return 0, "", false
	}
	if strings.ContainsAny(inner, smallVarDisallowed) || strings.Contains(inner, "frac") {
		return 0, "", false
	}
	return span.CategorySmallVariable, inner, true
}

func classifyInlineMath(fragment string) (span.Category, string, bool) {
	m := parenInline.FindStringSubmatch(fragment)
	if m == nil {
		return 0, "", false
	}
	return span.CategoryInlineMath, strings.TrimSpace(m[1]), true
}

func classifySimpleVariable(fragment string) (span.Category, string, bool) {
	inner, ok := singleDollarBody(fragment)
	if !ok {
		return 0, "", false
	}
	inner = strings.TrimSpace(inner)
	if !simpleVarShape.MatchString(inner) {
		return 0, "", false
	}
	for _, d := range simpleVarDisallowed {
		if strings.Contains(inner, d) {
			return 0, "", false
		}
	}
	return span.CategorySimpleVariable, inner, true
}

func classifySelectiveMath(fragment string) (span.Category, string, bool) {
	inner, ok := singleDollarBody(fragment)
	if !ok {
		return 0, "", false
	}
	for _, pat := range mathIndicators {
		if pat.MatchString(inner) {
			return span.CategorySelectiveMath, strings.TrimSpace(inner), true
		}
	}
	return 0, "", false
}

// singleDollarBody extracts the body of a $...$ fragment, rejecting
// $$...$$ (that is block math, rule 2's business).
func singleDollarBody(fragment string) (string, bool) {
	m := singleDollar.FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	if strings.HasPrefix(fragment, "$$") || strings.HasSuffix(fragment, "$$") {
		return "", false
	}
	return m[1], true
}
