package report

import (
	"io"

	"github.com/nao1215/trustguard/internal/model"
)

// Writer renders analyses in one output format.
type Writer interface {
	// Write outputs the complete analysis.
	Write(analysis *model.Analysis) (int, error)

	// WriteVerdict outputs only the summarized verdict.
	WriteVerdict(verdict *model.Verdict) (int, error)

	// WriteComparison outputs the change between two analyses.
	WriteComparison(comparison *model.Comparison) (int, error)
}

// MultiWriter writes to multiple Writers, for example the terminal and a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the analysis to all Writers. It stops on the first error.
func (m *MultiWriter) Write(analysis *model.Analysis) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(analysis) })
}

// WriteVerdict outputs the verdict to all Writers.
func (m *MultiWriter) WriteVerdict(verdict *model.Verdict) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteVerdict(verdict) })
}

// WriteComparison outputs the comparison to all Writers.
func (m *MultiWriter) WriteComparison(comparison *model.Comparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(comparison) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
