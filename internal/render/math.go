package render

import "golang.org/x/net/html"

// MathRenderer is the typesetting collaborator. It receives the raw
// math body with delimiters already stripped and a display-mode flag.
type MathRenderer interface {
	RenderMath(body string, display bool) string
}

// MathRendererFunc adapts a function to the MathRenderer interface.
type MathRendererFunc func(body string, display bool) string

func (f MathRendererFunc) RenderMath(body string, display bool) string {
	return f(body, display)
}

// HTMLMathRenderer emits pandoc-style wrapper markup that client-side
// typesetters (KaTeX, MathJax) pick up. No actual typesetting happens
// here.
type HTMLMathRenderer struct{}

func (HTMLMathRenderer) RenderMath(body string, display bool) string {
	esc := html.EscapeString(body)
	if display {
		return `<span class="math display">\[` + esc + `\]</span>`
	}
	return `<span class="math inline">\(` + esc + `\)</span>`
}
