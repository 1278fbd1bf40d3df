package input

import "io"

// TextSource handles plain text and Markdown files, which are already
// in the renderer's input format.
type TextSource struct{}

func (s *TextSource) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
