package latex

import (
	"strings"
	"testing"

	"github.com/scitextlab/scirender/internal/span"
)

func TestMatchEnvironments_SingleTopLevel(t *testing.T) {
	text := `before \begin{itemize}\item A\end{itemize} after`
	spans := MatchEnvironments(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Kind != span.KindEnvironment {
		t.Errorf("expected environment kind, got %v", s.Kind)
	}
	if s.Content != `\begin{itemize}\item A\end{itemize}` {
		t.Errorf("unexpected content %q", s.Content)
	}
	if s.Content != text[s.Start:s.End] {
		t.Errorf("content does not match text[start:end]")
	}
}

func TestMatchEnvironments_NestedStaysInParent(t *testing.T) {
	text := `\begin{itemize}\item A \begin{enumerate}\item X\end{enumerate}\end{itemize}`
	spans := MatchEnvironments(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 top-level span, got %d", len(spans))
	}
	if !strings.Contains(spans[0].Content, `\begin{enumerate}`) {
		t.Errorf("nested environment missing from parent content: %q", spans[0].Content)
	}
}

func TestMatchEnvironments_MismatchedNamesEmitNothing(t *testing.T) {
	spans := MatchEnvironments(`\begin{itemize}\item A\end{enumerate}`)
	if len(spans) != 0 {
		t.Fatalf("expected 0 spans for mismatched names, got %d", len(spans))
	}
}

func TestMatchEnvironments_Interleaved(t *testing.T) {
	// Overlapping-but-not-nested environments are undefined input; the
	// contract is that nothing is emitted, not that they are repaired.
	text := `\begin{itemize} \begin{enumerate} \end{itemize} \end{enumerate}`
	spans := MatchEnvironments(text)
	if len(spans) != 0 {
		t.Fatalf("expected 0 spans for interleaved environments, got %d", len(spans))
	}
}

func TestMatchEnvironments_UnterminatedEmitsNothing(t *testing.T) {
	spans := MatchEnvironments(`\begin{itemize}\item A`)
	if len(spans) != 0 {
		t.Fatalf("expected 0 spans for unterminated begin, got %d", len(spans))
	}
}

func TestMatchEnvironments_SiblingsSortedByStart(t *testing.T) {
	text := `\begin{itemize}\item A\end{itemize} mid \begin{enumerate}\item B\end{enumerate}`
	spans := MatchEnvironments(text)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Start >= spans[1].Start {
		t.Errorf("spans not sorted by start: %d, %d", spans[0].Start, spans[1].Start)
	}
}

// Balanced input never emits more top-level environments than there are
// begin tags, and every emitted span is itself syntactically complete.
func TestMatchEnvironments_BalancedInputProperties(t *testing.T) {
	inputs := []string{
		`\begin{itemize}\item A\end{itemize}`,
		`\begin{a}\begin{b}\end{b}\end{a}`,
		`x \begin{a}\end{a} y \begin{a}\end{a} z`,
		`\begin{description}\item[t] d\end{description}`,
	}
	for _, text := range inputs {
		begins := strings.Count(text, `\begin{`)
		spans := MatchEnvironments(text)
		if len(spans) > begins {
			t.Errorf("%q: emitted %d spans for %d begins", text, len(spans), begins)
		}
		for _, s := range spans {
			if cat, _ := Classify(s.Content); cat != span.CategoryEnvironment {
				t.Errorf("%q: emitted span %q is not a complete environment", text, s.Content)
			}
		}
	}
}

func TestEnvironmentName(t *testing.T) {
	if name := EnvironmentName(`\begin{itemize}\end{itemize}`); name != "itemize" {
		t.Errorf("expected itemize, got %q", name)
	}
	if name := EnvironmentName(`plain text`); name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
	if name := EnvironmentName(`\end{itemize}`); name != "" {
		t.Errorf("expected empty name for end tag, got %q", name)
	}
}
