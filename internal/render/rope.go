package render

import (
	"strconv"
	"strings"
)

// placeholderPrefix is the fixed prefix of the synthetic tokens that
// stand in for already-rendered nodes while prose passes through the
// Markdown engine. Tokens are the prefix plus a counter that increases
// monotonically within one top-level render call. Literal user text
// that happens to match a generated token is not collision-proofed;
// modeling embeds structurally (below) keeps the window to exactly
// that case.
const placeholderPrefix = "scirender-embed-"

// renderState carries the per-call placeholder counter. A fresh state
// is created for every top-level render, never shared across calls.
type renderState struct {
	counter int
}

type ropeSegment struct {
	text    string // literal prose, isEmbed false
	embed   string // rendered HTML, isEmbed true
	isEmbed bool
}

// rope is a sequence of prose segments and embedded pre-rendered nodes:
// prose with holes. The prose is handed to the Markdown engine with
// each hole replaced by a placeholder token, and the tokens are
// substituted back in the engine's output tree.
type rope struct {
	state *renderState
	segs  []ropeSegment
}

func newRope(state *renderState) *rope {
	return &rope{state: state}
}

func (r *rope) addText(s string) {
	if s == "" {
		return
	}
	r.segs = append(r.segs, ropeSegment{text: s})
}

func (r *rope) addEmbed(html string) {
	r.segs = append(r.segs, ropeSegment{embed: html, isEmbed: true})
}

func (r *rope) empty() bool {
	for _, seg := range r.segs {
		if seg.isEmbed || strings.TrimSpace(seg.text) != "" {
			return false
		}
	}
	return true
}

// flatten returns the prose with placeholder tokens in the holes, plus
// the token-to-HTML map for substitution.
func (r *rope) flatten() (string, map[string]string) {
	var buf strings.Builder
	repl := make(map[string]string)
	for _, seg := range r.segs {
		if !seg.isEmbed {
			buf.WriteString(seg.text)
			continue
		}
		token := placeholderPrefix + strconv.Itoa(r.state.counter)
		r.state.counter++
		repl[token] = seg.embed
		buf.WriteString(token)
	}
	return buf.String(), repl
}
