// Package scan turns a block of mixed scientific text into an ordered,
// non-overlapping list of typed spans, and expands list-style LaTeX
// environments into items. It owns no rendering; gaps between spans are
// implicit plain text reassembled by the caller.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scitextlab/scirender/internal/latex"
	"github.com/scitextlab/scirender/internal/span"
)

var (
	smilesPattern  = regexp.MustCompile(`(?s)<smiles>(.*?)</smiles>`)
	headingPattern = regexp.MustCompile(`(?m)^#{1,6} .+$`)

	blockDollarPattern  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	blockBracketPattern = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	parenInlinePattern  = regexp.MustCompile(`(?s)\\\((.+?)\\\)`)
	// $...$ with non-space characters immediately inside both delimiters,
	// confined to one line.
	dollarInlinePattern = regexp.MustCompile(`\$([^\s$](?:[^$\n]*[^\s$])?)\$`)
)

// Scan finds every candidate region in text (chemical tags, headings,
// math, environments), filters classifier-rejected math candidates, and
// resolves overlaps into a sorted, mutually non-overlapping span list.
func Scan(text string) []span.Span {
	var all []span.Span
	all = append(all, SmilesSpans(text)...)
	all = append(all, collectHeadings(text)...)
	all = append(all, collectMath(text)...)
	all = append(all, latex.MatchEnvironments(text)...)

	// Stable sort keeps the fixed collection order (smiles, heading,
	// math, environment) as the tie-break for identical bounds.
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })

	return resolveOverlaps(all)
}

// SmilesSpans returns every <smiles>...</smiles> region in text.
func SmilesSpans(text string) []span.Span {
	return collectPattern(text, smilesPattern, span.KindSmiles)
}

func collectHeadings(text string) []span.Span {
	return collectPattern(text, headingPattern, span.KindHeading)
}

func collectPattern(text string, pat *regexp.Regexp, kind span.Kind) []span.Span {
	var spans []span.Span
	for _, m := range pat.FindAllStringIndex(text, -1) {
		spans = append(spans, span.Span{
			Start:   m[0],
			End:     m[1],
			Content: text[m[0]:m[1]],
			Kind:    kind,
		})
	}
	return spans
}

// collectMath scans block math first, then inline candidates. An inline
// candidate is dropped when it overlaps a block hit, when its line
// starts with a bare list bullet immediately before it (the Markdown
// engine pairs that bullet with the text), or when the classifier
// resolves it to a bare variable or plain prose.
func collectMath(text string) []span.Span {
	spans := collectPattern(text, blockDollarPattern, span.KindMath)
	spans = append(spans, collectPattern(text, blockBracketPattern, span.KindMath)...)

	for _, cand := range InlineCandidates(text) {
		overlaps := false
		for _, b := range spans {
			if cand.Overlaps(b) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		if PrecededByBullet(text, cand.Start) {
			continue
		}
		if cat, _ := latex.Classify(cand.Content); !cat.IsMath() {
			continue
		}
		spans = append(spans, cand)
	}
	return spans
}

// InlineCandidates returns the raw \(...\) and $...$ candidate spans in
// text, unfiltered. The scanner and the fast inline render path share
// this so they cannot drift apart on what counts as a candidate.
func InlineCandidates(text string) []span.Span {
	cands := collectPattern(text, parenInlinePattern, span.KindMath)
	cands = append(cands, collectPattern(text, dollarInlinePattern, span.KindMath)...)
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Start < cands[j].Start })
	return cands
}

// PrecededByBullet reports whether, on the line containing pos, the
// only thing before pos (ignoring leading whitespace) is a bare list
// bullet. Such candidates are left for the Markdown engine to pair
// with its bullet.
func PrecededByBullet(text string, pos int) bool {
	lineStart := strings.LastIndexByte(text[:pos], '\n') + 1
	before := strings.TrimSpace(text[lineStart:pos])
	switch before {
	case "-", "*", "+":
		return true
	}
	return false
}

// resolveOverlaps drops spans fully contained in another span's range
// (identical bounds keep the first-inserted), then sweeps left to right
// keeping the first of any remaining overlapping pair, so the result is
// unconditionally non-overlapping.
func resolveOverlaps(spans []span.Span) []span.Span {
	var kept []span.Span
	for i, s := range spans {
		contained := false
		for j, other := range spans {
			if i == j {
				continue
			}
			if !other.Contains(s) {
				continue
			}
			if other.Start == s.Start && other.End == s.End {
				// Identical bounds: first inserted wins.
				if j < i {
					contained = true
					break
				}
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, s)
		}
	}

	var out []span.Span
	lastEnd := 0
	for _, s := range kept {
		if s.Start < lastEnd {
			continue
		}
		out = append(out, s)
		lastEnd = s.End
	}
	return out
}
