package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/jsongraph/pkg/render"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath strips the extension from input, e.g. doc.json -> doc.
func basePath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// defaultOutput derives the output path from input. It never returns input
// itself: doc.json rendered as json becomes doc.graph.json.
func defaultOutput(input string, format render.Format) string {
	out := basePath(input) + format.Ext()
	if filepath.Clean(out) == filepath.Clean(input) {
		out = basePath(input) + ".graph" + format.Ext()
	}
	return out
}

// formatFor picks the render format: the explicit flag wins, then the
// extension of output, then svg.
func formatFor(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if f, err := render.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return render.FormatSVG, nil
}
