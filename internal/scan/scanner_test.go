package scan

import (
	"strings"
	"testing"

	"github.com/scitextlab/scirender/internal/span"
)

func kinds(spans []span.Span) []span.Kind {
	out := make([]span.Kind, len(spans))
	for i, s := range spans {
		out[i] = s.Kind
	}
	return out
}

// checkInvariants asserts the scanner's output contract: sorted,
// non-overlapping, and every span's content matches its range.
func checkInvariants(t *testing.T, text string, spans []span.Span) {
	t.Helper()
	lastEnd := 0
	for i, s := range spans {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			t.Errorf("span %d has invalid bounds [%d, %d)", i, s.Start, s.End)
		}
		if s.Start < lastEnd {
			t.Errorf("span %d overlaps previous (start %d < %d)", i, s.Start, lastEnd)
		}
		if s.Content != text[s.Start:s.End] {
			t.Errorf("span %d content %q != text[%d:%d]", i, s.Content, s.Start, s.End)
		}
		lastEnd = s.End
	}
}

func TestScan_SmilesTags(t *testing.T) {
	text := "The molecule <smiles>CCO</smiles> is ethanol."
	spans := Scan(text)
	checkInvariants(t, text, spans)

	if len(spans) != 1 || spans[0].Kind != span.KindSmiles {
		t.Fatalf("expected one smiles span, got %v", kinds(spans))
	}
	if spans[0].Content != "<smiles>CCO</smiles>" {
		t.Errorf("unexpected content %q", spans[0].Content)
	}
}

func TestScan_Headings(t *testing.T) {
	text := "# Title\n\nbody\n\n### Sub heading\n"
	spans := Scan(text)
	checkInvariants(t, text, spans)

	if len(spans) != 2 {
		t.Fatalf("expected 2 heading spans, got %v", kinds(spans))
	}
	for _, s := range spans {
		if s.Kind != span.KindHeading {
			t.Errorf("expected heading, got %v", s.Kind)
		}
	}
	if spans[0].Content != "# Title" {
		t.Errorf("unexpected heading content %q", spans[0].Content)
	}
}

func TestScan_HeadingNeedsSpace(t *testing.T) {
	spans := Scan("#NoSpace\n####### seven hashes\n")
	for _, s := range spans {
		if s.Kind == span.KindHeading {
			t.Errorf("unexpected heading span %q", s.Content)
		}
	}
}

func TestScan_BlockMathTakesPrecedenceOverInline(t *testing.T) {
	text := "Result: $$a+b$$ done."
	spans := Scan(text)
	checkInvariants(t, text, spans)

	if len(spans) != 1 || spans[0].Kind != span.KindMath {
		t.Fatalf("expected one math span, got %v", kinds(spans))
	}
	if spans[0].Content != "$$a+b$$" {
		t.Errorf("expected full block delimiters, got %q", spans[0].Content)
	}
}

func TestScan_InlineMathEmitted(t *testing.T) {
	text := `The sum $x+y$ grows.`
	spans := Scan(text)
	checkInvariants(t, text, spans)

	if len(spans) != 1 || spans[0].Kind != span.KindMath {
		t.Fatalf("expected one math span, got %v", kinds(spans))
	}
	if spans[0].Content != "$x+y$" {
		t.Errorf("unexpected content %q", spans[0].Content)
	}
}

func TestScan_VariablesAreNotMathSpans(t *testing.T) {
	// Bare variables render as inline emphasis, not as math spans.
	for _, text := range []string{`the value $x$ here`, `the value \(ab\) here`} {
		spans := Scan(text)
		if len(spans) != 0 {
			t.Errorf("Scan(%q): expected no spans, got %v", text, kinds(spans))
		}
	}
}

func TestScan_ProseDollarsAreNotMath(t *testing.T) {
	text := "Price is $10 and x$y"
	spans := Scan(text)
	if len(spans) != 0 {
		t.Fatalf("expected no spans for prose dollars, got %v", kinds(spans))
	}
}

func TestScan_BulletOwnedCandidateSkipped(t *testing.T) {
	text := "- $x+y$\n- plain item\n"
	spans := Scan(text)
	for _, s := range spans {
		if s.Kind == span.KindMath {
			t.Errorf("bullet-owned candidate emitted as math: %q", s.Content)
		}
	}
}

func TestScan_IndentedBulletAlsoSkipped(t *testing.T) {
	text := "  * $x+y$\n"
	spans := Scan(text)
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %v", kinds(spans))
	}
}

func TestScan_ContainmentFilter(t *testing.T) {
	text := `\begin{equation}$$a+b$$\end{equation}`
	spans := Scan(text)
	checkInvariants(t, text, spans)

	if len(spans) != 1 || spans[0].Kind != span.KindEnvironment {
		t.Fatalf("expected the environment to absorb contained math, got %v", kinds(spans))
	}
}

func TestScan_MixedDocument(t *testing.T) {
	text := "# Intro\n\nWater is <smiles>O</smiles> and $E=mc^2$ matters.\n\n$$\\int_0^1 x dx$$\n\n\\begin{itemize}\\item A\\end{itemize}\n"
	spans := Scan(text)
	checkInvariants(t, text, spans)

	got := kinds(spans)
	want := []span.Kind{span.KindHeading, span.KindSmiles, span.KindMath, span.KindMath, span.KindEnvironment}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

// The partition property: span contents plus the gaps between them
// reassemble the original text exactly.
func TestScan_PartitionRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain prose only",
		"# H\n\ntext $a+b$ and <smiles>CCO</smiles>\n\n$$x$$\n",
		`\begin{itemize}\item A\end{itemize} tail`,
		"Price is $10 and x$y",
	}
	for _, text := range inputs {
		spans := Scan(text)
		var buf strings.Builder
		pos := 0
		for _, s := range spans {
			buf.WriteString(text[pos:s.Start])
			buf.WriteString(s.Content)
			pos = s.End
		}
		buf.WriteString(text[pos:])
		if buf.String() != text {
			t.Errorf("round trip failed for %q: got %q", text, buf.String())
		}
	}
}

func TestPrecededByBullet(t *testing.T) {
	text := "- $a+b$\nx - $c$\n"
	if !PrecededByBullet(text, 2) {
		t.Errorf("expected bullet detection at start of line")
	}
	// "x - " has content before the dash, so the dash is not a bullet.
	if PrecededByBullet(text, strings.LastIndex(text, "$c$")) {
		t.Errorf("mid-line dash should not count as a bullet")
	}
}
