package render

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"
)

// StructureRenderer is the chemical-structure collaborator. It receives
// the raw notation with the <smiles> tags stripped. A non-nil error
// means the fragment could not be drawn; the orchestrator reports it
// through the per-fragment callback and renders an inline error
// indicator while sibling fragments continue.
type StructureRenderer interface {
	RenderStructure(notation string) (string, error)
}

// StructureRendererFunc adapts a function to the StructureRenderer
// interface.
type StructureRendererFunc func(notation string) (string, error)

func (f StructureRendererFunc) RenderStructure(notation string) (string, error) {
	return f(notation)
}

// HTMLStructureRenderer emits a tagged span carrying the notation for a
// client-side drawer. It checks the notation lexically (SMILES
// alphabet, balanced brackets) but makes no claim about chemical
// correctness.
type HTMLStructureRenderer struct{}

var smilesAlphabet = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$%/\\.:*]+$`)

func (HTMLStructureRenderer) RenderStructure(notation string) (string, error) {
	if notation == "" {
		return "", fmt.Errorf("empty structure notation")
	}
	if !smilesAlphabet.MatchString(notation) {
		return "", fmt.Errorf("invalid character in structure notation")
	}
	if err := checkBalanced(notation); err != nil {
		return "", err
	}
	esc := html.EscapeString(notation)
	return `<span class="smiles" data-smiles="` + esc + `">` + esc + `</span>`, nil
}

func checkBalanced(notation string) error {
	round, square := 0, 0
	for _, ch := range notation {
		switch ch {
		case '(':
			round++
		case ')':
			round--
		case '[':
			square++
		case ']':
			square--
		}
		if round < 0 || square < 0 {
			return fmt.Errorf("unbalanced brackets in structure notation")
		}
	}
	if round != 0 || square != 0 {
		return fmt.Errorf("unbalanced brackets in structure notation")
	}
	return nil
}
