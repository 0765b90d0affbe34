package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/trustguard/internal/model"
)

// JSONWriter outputs analyses in JSON format.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the complete analysis.
func (w *JSONWriter) Write(analysis *model.Analysis) (int, error) {
	return w.writeJSON(analysis)
}

// WriteVerdict outputs the verdict.
func (w *JSONWriter) WriteVerdict(verdict *model.Verdict) (int, error) {
	return w.writeJSON(verdict)
}

// WriteComparison outputs the comparison.
func (w *JSONWriter) WriteComparison(comparison *model.Comparison) (int, error) {
	return w.writeJSON(comparison)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output.
	data = append(data, '\n')
	return w.output.Write(data)
}

// JSONReport wraps an analysis with its verdict and the tool version.
type JSONReport struct {
	// Version is the TrustGuard version that produced the analysis.
	Version string `json:"version"`

	// Verdict is the summarized answer.
	Verdict *model.Verdict `json:"verdict"`

	// Analysis holds every intermediate finding.
	Analysis *model.Analysis `json:"analysis"`
}

// NewJSONReport creates a JSONReport for analysis.
func NewJSONReport(analysis *model.Analysis, version string) *JSONReport {
	return &JSONReport{
		Version:  version,
		Verdict:  model.NewVerdict(analysis),
		Analysis: analysis,
	}
}

// FullJSONWriter outputs analyses wrapped in a JSONReport.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the analysis wrapped with its verdict and version.
func (w *FullJSONWriter) Write(analysis *model.Analysis) (int, error) {
	return w.writeJSON(NewJSONReport(analysis, w.version))
}
