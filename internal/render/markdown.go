package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderRope renders a rope's prose through the Markdown engine (or a
// plain HTML escape when markdown is off) and substitutes the embedded
// nodes back into the produced output.
func renderRope(r *rope, markdown bool) (string, error) {
	prose, repl := r.flatten()

	if !markdown {
		out := html.EscapeString(prose)
		for token, embed := range repl {
			out = strings.ReplaceAll(out, token, embed)
		}
		return out, nil
	}

	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(prose), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	if len(repl) == 0 {
		return buf.String(), nil
	}
	return substituteTokens(buf.String(), repl)
}

// substituteTokens parses rendered HTML and replaces placeholder tokens
// found in text nodes with their pre-rendered embeds. Working on the
// element tree (rather than string replacement over serialized HTML)
// keeps tokens inside attributes or entity-escaped text from being
// touched.
func substituteTokens(doc string, repl map[string]string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(doc), ctx)
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	for _, n := range nodes {
		ctx.AppendChild(n)
	}
	splitTextNodes(ctx, repl)

	var buf bytes.Buffer
	for c := ctx.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}

func splitTextNodes(n *html.Node, repl map[string]string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			replaceInTextNode(n, c, repl)
		} else {
			splitTextNodes(c, repl)
		}
		c = next
	}
}

// replaceInTextNode splits one text node around every placeholder token
// it contains, inserting the embedded HTML as raw nodes.
func replaceInTextNode(parent, node *html.Node, repl map[string]string) {
	text := node.Data
	token, embed, idx := nextToken(text, repl)
	if idx < 0 {
		return
	}

	var pieces []*html.Node
	for idx >= 0 {
		if idx > 0 {
			pieces = append(pieces, &html.Node{Type: html.TextNode, Data: text[:idx]})
		}
		pieces = append(pieces, &html.Node{Type: html.RawNode, Data: embed})
		text = text[idx+len(token):]
		token, embed, idx = nextToken(text, repl)
	}
	if text != "" {
		pieces = append(pieces, &html.Node{Type: html.TextNode, Data: text})
	}

	for _, p := range pieces {
		parent.InsertBefore(p, node)
	}
	parent.RemoveChild(node)
}

// nextToken finds the earliest placeholder token present in text.
func nextToken(text string, repl map[string]string) (token, embed string, idx int) {
	search := text
	offset := 0
	for {
		i := strings.Index(search, placeholderPrefix)
		if i < 0 {
			return "", "", -1
		}
		j := i + len(placeholderPrefix)
		k := j
		for k < len(search) && search[k] >= '0' && search[k] <= '9' {
			k++
		}
		if k > j {
			cand := search[i:k]
			if e, ok := repl[cand]; ok {
				return cand, e, offset + i
			}
		}
		offset += j
		search = search[j:]
	}
}

// unwrapParagraph strips a single enclosing <p> element, used when the
// caller asked for inline output and the prose rendered to exactly one
// paragraph.
func unwrapParagraph(out string) string {
	trimmed := strings.TrimSpace(out)
	if !strings.HasPrefix(trimmed, "<p>") || !strings.HasSuffix(trimmed, "</p>") {
		return out
	}
	inner := trimmed[len("<p>") : len(trimmed)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return out
	}
	return inner
}
