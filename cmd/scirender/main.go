// Command scirender renders a scientific text file (or stdin) to HTML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scitextlab/scirender/internal/input"
	"github.com/scitextlab/scirender/internal/render"
)

func main() {
	markdown := flag.Bool("markdown", true, "run prose through the Markdown engine")
	inline := flag.Bool("inline", false, "render without an enclosing paragraph")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "scirender:", err)
		os.Exit(1)
	}

	renderer := render.New(log)
	html, err := renderer.Render(text, render.Options{Markdown: *markdown, Inline: *inline})
	if err != nil {
		fmt.Fprintln(os.Stderr, "scirender:", err)
		os.Exit(1)
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "scirender:", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}
	fmt.Fprintln(dst, html)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Unknown extensions are read as plain text.
	if !input.IsSupportedExtension(path) {
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	src, err := input.ForFile(path, true)
	if err != nil {
		return "", err
	}
	return src.Extract(f, path)
}
