// Package render orchestrates segmentation and hands typed spans to the
// external collaborators: the Markdown engine for prose, the math
// typesetter, and the chemical-structure drawer. It is purely
// synchronous and keeps no state across calls.
package render

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/scitextlab/scirender/internal/latex"
	"github.com/scitextlab/scirender/internal/scan"
	"github.com/scitextlab/scirender/internal/span"
)

// Options are the two per-request rendering switches.
type Options struct {
	// Markdown runs prose through the Markdown engine; when false,
	// prose is HTML-escaped verbatim.
	Markdown bool
	// Inline renders without an enclosing paragraph when the input
	// qualifies for the inline fast path.
	Inline bool
}

// Renderer converts mixed scientific text to HTML. The zero value is
// not usable; construct with New and override collaborators as needed.
type Renderer struct {
	Math       MathRenderer
	Structures StructureRenderer

	// OnStructureError is invoked once per failed chemical fragment.
	// Sibling fragments continue rendering regardless.
	OnStructureError func(notation string, err error)

	log *slog.Logger
}

// New returns a Renderer with the default HTML-emitting collaborators.
func New(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		Math:       HTMLMathRenderer{},
		Structures: HTMLStructureRenderer{},
		log:        log,
	}
}

// Render converts text to HTML. The only error surfaces are content
// validation (*latex.ValidationError) and collaborator plumbing;
// segmentation itself never fails.
func (r *Renderer) Render(text string, opts Options) (string, error) {
	if err := latex.CheckContent(text); err != nil {
		return "", err
	}
	state := &renderState{}
	return r.renderFragment(text, opts, state)
}

// renderFragment is the single render-a-text-fragment entry point that
// environment expansion recurses back into. It picks the full span
// pipeline when the fragment contains any environment or block-math
// delimiter, and the faster inline-substitution path otherwise. Both
// paths build prose through the same addProse helper, so a fragment
// that qualifies for the fast path renders identically under either.
func (r *Renderer) renderFragment(text string, opts Options, state *renderState) (string, error) {
	if needsFullPipeline(text) {
		return r.renderFull(text, opts, state)
	}
	return r.renderInline(text, opts, state)
}

func needsFullPipeline(text string) bool {
	if strings.Contains(text, "$$") || strings.Contains(text, `\[`) {
		return true
	}
	return len(latex.MatchEnvironments(text)) > 0
}

// renderInline is the fast path: inline math and chemical tags become
// placeholder tokens inside the prose, the whole string goes to the
// Markdown engine once, and the tokens are substituted back.
func (r *Renderer) renderInline(text string, opts Options, state *renderState) (string, error) {
	rp := newRope(state)
	r.addProse(rp, text)
	out, err := renderRope(rp, opts.Markdown)
	if err != nil {
		return "", err
	}
	if opts.Inline {
		out = unwrapParagraph(out)
	}
	return out, nil
}

// renderFull walks the scanned span list. Prose gaps, headings, inline
// math, and chemical tags accumulate into a rope; block math and
// environments flush the rope and emit their own block output.
func (r *Renderer) renderFull(text string, opts Options, state *renderState) (string, error) {
	spans := scan.Scan(text)

	var out strings.Builder
	rp := newRope(state)
	flush := func() error {
		if rp.empty() {
			rp = newRope(state)
			return nil
		}
		prose, err := renderRope(rp, opts.Markdown)
		if err != nil {
			return err
		}
		out.WriteString(prose)
		rp = newRope(state)
		return nil
	}

	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			r.addProse(rp, text[pos:s.Start])
		}
		switch s.Kind {
		case span.KindText:
			// The scanner leaves plain text implicit, but the kind is
			// part of the closed set; treat it as prose if it appears.
			r.addProse(rp, s.Content)
		case span.KindHeading:
			r.addProse(rp, s.Content)
		case span.KindSmiles:
			rp.addEmbed(r.structureHTML(s.Content))
		case span.KindMath:
			cat, body := latex.Classify(s.Content)
			if cat == span.CategoryBlockMath {
				if err := flush(); err != nil {
					return "", err
				}
				out.WriteString(r.Math.RenderMath(body, true))
			} else {
				rp.addEmbed(r.Math.RenderMath(body, false))
			}
		case span.KindEnvironment:
			if err := flush(); err != nil {
				return "", err
			}
			envHTML, err := r.renderEnvironment(s.Content, opts, state)
			if err != nil {
				return "", err
			}
			out.WriteString(envHTML)
		}
		pos = s.End
	}
	if pos < len(text) {
		r.addProse(rp, text[pos:])
	}
	if err := flush(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// addProse appends a prose fragment to the rope, turning the inline
// regions it contains (chemical tags, inline math, bare variables) into
// embeds. Candidates the classifier resolves to plain text stay in the
// prose untouched, as do math candidates a bare list bullet owns.
func (r *Renderer) addProse(rp *rope, text string) {
	cands := scan.SmilesSpans(text)
	cands = append(cands, scan.InlineCandidates(text)...)
	sortSpans(cands)

	pos := 0
	for _, c := range cands {
		if c.Start < pos {
			continue
		}
		var embed string
		switch c.Kind {
		case span.KindSmiles:
			embed = r.structureHTML(c.Content)
		default:
			cat, body := latex.Classify(c.Content)
			switch cat {
			case span.CategorySimpleVariable, span.CategorySmallVariable:
				embed = `<em class="sci-var">` + html.EscapeString(body) + `</em>`
			case span.CategoryInlineMath, span.CategorySelectiveMath:
				if scan.PrecededByBullet(text, c.Start) {
					continue
				}
				embed = r.Math.RenderMath(body, false)
			default:
				continue
			}
		}
		rp.addText(text[pos:c.Start])
		rp.addEmbed(embed)
		pos = c.End
	}
	rp.addText(text[pos:])
}

func (r *Renderer) structureHTML(content string) string {
	notation := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(content, "<smiles>"), "</smiles>"))
	rendered, err := r.Structures.RenderStructure(notation)
	if err != nil {
		if r.OnStructureError != nil {
			r.OnStructureError(notation, err)
		}
		r.log.Warn("chemical structure render failed", "error", err)
		return `<span class="smiles-error" title="` + html.EscapeString(err.Error()) + `">invalid structure</span>`
	}
	return rendered
}

// renderEnvironment expands a list-style environment into items and
// renders each item body by recursing into renderFragment. Unknown
// environment names render as a generic unstyled list; an environment
// with no items renders a malformed indicator plus its verbatim text.
func (r *Renderer) renderEnvironment(envText string, opts Options, state *renderState) (string, error) {
	name := latex.EnvironmentName(envText)
	items, err := scan.ExpandEnvironment(envText, name)
	if err != nil {
		r.log.Warn("malformed environment", "name", name)
		return `<div class="environment-error">malformed environment</div><pre>` +
			html.EscapeString(envText) + `</pre>`, nil
	}

	itemOpts := opts
	itemOpts.Inline = true

	var buf strings.Builder
	openTag, closeTag := envListTags(name)
	buf.WriteString(openTag)
	for _, it := range items {
		body, err := r.renderFragment(it.Body, itemOpts, state)
		if err != nil {
			return "", err
		}
		if name == "description" {
			term, err := r.renderFragment(it.Term, itemOpts, state)
			if err != nil {
				return "", err
			}
			buf.WriteString("<dt>" + term + "</dt><dd>" + body + "</dd>")
		} else {
			buf.WriteString("<li>" + body + "</li>")
		}
	}
	buf.WriteString(closeTag)
	return buf.String(), nil
}

func envListTags(name string) (string, string) {
	switch name {
	case "itemize":
		return "<ul>", "</ul>"
	case "enumerate":
		return "<ol>", "</ol>"
	case "description":
		return "<dl>", "</dl>"
	}
	return `<ul class="environment environment-` + html.EscapeString(name) + `">`, "</ul>"
}

func sortSpans(spans []span.Span) {
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
}
