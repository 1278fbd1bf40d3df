package latex

import (
	"errors"
	"testing"
)

func TestCheckContent_RejectsDisallowedPrimitives(t *testing.T) {
	rejected := []string{
		`see \input{other.tex} for details`,
		`\include{chapter}`,
		`\write18{rm -rf}`,
		`\openout3=log`,
		`\catcode`,
	}
	for _, text := range rejected {
		err := CheckContent(text)
		if err == nil {
			t.Errorf("CheckContent(%q): expected rejection", text)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("CheckContent(%q): expected *ValidationError, got %T", text, err)
		}
	}
}

func TestCheckContent_AllowsOrdinaryInput(t *testing.T) {
	allowed := []string{
		"plain prose",
		`math $x+y$ and $$E=mc^2$$`,
		`\begin{itemize}\item A\end{itemize}`,
		`\frac{1}{2} and \inputlike is fine`, // no word boundary after "input"
	}
	for _, text := range allowed {
		if err := CheckContent(text); err != nil {
			t.Errorf("CheckContent(%q): unexpected error %v", text, err)
		}
	}
}

func TestValidationError_NamesPrimitive(t *testing.T) {
	err := CheckContent(`\input{x}`)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Primitive != `\input` {
		t.Errorf("expected primitive \\input, got %q", verr.Primitive)
	}
}
