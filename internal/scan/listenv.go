package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/scitextlab/scirender/internal/latex"
	"github.com/scitextlab/scirender/internal/span"
)

// ErrEmptyEnvironment is returned when an environment body yields no
// items even after the whole-body fallback. Callers render a malformed
// indicator plus the verbatim content instead of items.
var ErrEmptyEnvironment = errors.New("environment has no items")

const itemMarker = `\item`

var descriptionTermPattern = regexp.MustCompile(`(?s)^\[([^\]]*)\]\s*(.*)$`)

// ExpandEnvironment splits one environment's full text (including its
// \begin/\end wrapper) into ordered items. Nested top-level
// environments inside the body are protected with placeholder tokens
// before splitting, so their own \item markers cannot be mistaken for
// the parent's, and are substituted back verbatim into the returned
// item bodies. For description environments a leading [term] is split
// off into ListItem.Term.
func ExpandEnvironment(envText, name string) ([]span.ListItem, error) {
	body := stripWrapper(envText, name)

	protected, restore := protectNested(body)

	var items []span.ListItem
	for _, part := range strings.Split(protected, itemMarker) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, splitItem(part, name))
	}

	if len(items) == 0 {
		if trimmed := strings.TrimSpace(protected); trimmed != "" {
			items = append(items, splitItem(trimmed, name))
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyEnvironment
	}

	for i := range items {
		items[i].Term = restore(items[i].Term)
		items[i].Body = restore(items[i].Body)
	}
	return items, nil
}

func stripWrapper(envText, name string) string {
	begin := `\begin{` + name + `}`
	end := `\end{` + name + `}`
	body := envText
	if idx := strings.Index(body, begin); idx >= 0 {
		body = body[idx+len(begin):]
	}
	if idx := strings.LastIndex(body, end); idx >= 0 {
		body = body[:idx]
	}
	return body
}

// protectNested replaces each top-level environment in body with a
// unique token and returns the substituted body plus a function that
// puts the original content back.
func protectNested(body string) (string, func(string) string) {
	nested := latex.MatchEnvironments(body)
	if len(nested) == 0 {
		return body, func(s string) string { return s }
	}

	replacements := make(map[string]string, len(nested))
	var buf strings.Builder
	last := 0
	for i, env := range nested {
		token := fmt.Sprintf("@@env-%d@@", i)
		replacements[token] = env.Content
		buf.WriteString(body[last:env.Start])
		buf.WriteString(token)
		last = env.End
	}
	buf.WriteString(body[last:])

	restore := func(s string) string {
		for token, content := range replacements {
			s = strings.ReplaceAll(s, token, content)
		}
		return s
	}
	return buf.String(), restore
}

func splitItem(part, envName string) span.ListItem {
	if envName == "description" {
		if m := descriptionTermPattern.FindStringSubmatch(part); m != nil {
			return span.ListItem{Term: m[1], Body: strings.TrimSpace(m[2])}
		}
	}
	return span.ListItem{Body: part}
}
