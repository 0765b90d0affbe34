package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/trustguard/internal/model"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable plain text reports.
type SimpleWriter struct {
	baseWriter

	// verbose adds the individual findings and company indicators.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the complete analysis.
func (w *SimpleWriter) Write(analysis *model.Analysis) (int, error) {
	var sb strings.Builder

	verdict := model.NewVerdict(analysis)
	w.writeHeader(&sb, "TRUSTGUARD ANALYSIS")
	w.writeSummary(&sb, verdict)
	if analysis.Request.CompanyURL != "" {
		fmt.Fprintf(&sb, "Company URL:    %s\n", analysis.Request.CompanyURL)
	}
	if analysis.Error != "" {
		fmt.Fprintf(&sb, "Status:         ERROR - %s\n", analysis.Error)
	}
	sb.WriteString("\n")

	w.writeBreakdown(&sb, analysis)
	w.writeReasons(&sb, verdict.Reasons)
	if w.verbose {
		w.writeFindings(&sb, analysis)
	}
	if analysis.Company != nil {
		w.writeCompany(&sb, analysis.Company)
	}
	w.writeAction(&sb, verdict.RecommendedAction)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteVerdict outputs the verdict only.
func (w *SimpleWriter) WriteVerdict(verdict *model.Verdict) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, "TRUSTGUARD VERDICT")
	w.writeSummary(&sb, verdict)
	sb.WriteString("\n")
	w.writeReasons(&sb, verdict.Reasons)
	if len(verdict.CompanyRiskFactors) > 0 {
		w.writeSection(&sb, "COMPANY RISK FACTORS")
		for _, r := range verdict.CompanyRiskFactors {
			fmt.Fprintf(&sb, "  [-] %s\n", r)
		}
		sb.WriteString("\n")
	}
	w.writeAction(&sb, verdict.RecommendedAction)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteComparison outputs the change between two analyses.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, "TRUSTGUARD COMPARISON")
	fmt.Fprintf(&sb, "Previous:       %s  %s (%d/100)\n",
		c.Previous.DateAnalyzed.Format(dateFormat), c.Previous.Label, c.Previous.DisplayScore())
	fmt.Fprintf(&sb, "Current:        %s  %s (%d/100)\n",
		c.Current.DateAnalyzed.Format(dateFormat), c.Current.Label, c.Current.DisplayScore())
	fmt.Fprintf(&sb, "Trust change:   %s\n", signed(c.TrustDelta))
	if c.LabelChanged {
		fmt.Fprintf(&sb, "Label changed:  %s -> %s\n", c.Previous.Label, c.Current.Label)
	}
	sb.WriteString("\n")

	w.writeSection(&sb, "REASON CHANGES")
	if len(c.AddedReasons) == 0 && len(c.RemovedReasons) == 0 {
		sb.WriteString("  No changes\n")
	}
	for _, r := range c.AddedReasons {
		fmt.Fprintf(&sb, "  [+] %s\n", r)
	}
	for _, r := range c.RemovedReasons {
		fmt.Fprintf(&sb, "  [-] %s\n", r)
	}
	sb.WriteString("\n")
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := max((ruleWidth-len(title))/2, 0)
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, v *model.Verdict) {
	fmt.Fprintf(sb, "Analysis ID:    %s\n", v.ID)
	fmt.Fprintf(sb, "Date:           %s\n", v.DateAnalyzed.Format(dateFormat))
	if v.URL != "" {
		fmt.Fprintf(sb, "URL:            %s\n", v.URL)
	}
	fmt.Fprintf(sb, "Label:          %s\n", v.Label)
	fmt.Fprintf(sb, "Trust Score:    %d/100\n", v.TrustScore)
	if v.CombinedTrustScore != nil && v.CompanyTrustScore != nil {
		fmt.Fprintf(sb, "Combined Score: %d/100 (company %d/100)\n", *v.CombinedTrustScore, *v.CompanyTrustScore)
	}
	if v.CompanyName != "" {
		fmt.Fprintf(sb, "Company:        %s (verified)\n", v.CompanyName)
	}
}

func (w *SimpleWriter) writeBreakdown(sb *strings.Builder, a *model.Analysis) {
	w.writeSection(sb, "SCORE BREAKDOWN")
	fmt.Fprintf(sb, "  Rule heuristics:    %3d\n", a.Score.RuleScore)
	fmt.Fprintf(sb, "  Language model:     %3d\n", a.Score.LLMScore)
	fmt.Fprintf(sb, "  Domain reputation:  %3d\n", a.Score.DomainDeduction)
	fmt.Fprintf(sb, "  Risk score:         %3d  (%s)\n", a.Score.RiskScore, a.Score.RiskLevel)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeReasons(sb *strings.Builder, reasons []string) {
	w.writeSection(sb, "REASONS")
	if len(reasons) == 0 {
		sb.WriteString("  No warning signs found\n\n")
		return
	}
	for _, r := range reasons {
		fmt.Fprintf(sb, "  [!] %s\n", r)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFindings(sb *strings.Builder, a *model.Analysis) {
	w.writeSection(sb, "FINDINGS")

	fmt.Fprintf(sb, "Rules (%d of %d matched):\n", a.Rules.Count(), len(model.RuleKeys))
	ruleFlags := a.Rules.Flags()
	for _, k := range model.RuleKeys {
		fmt.Fprintf(sb, "  %-22s %s\n", humanize(k), yesNo(ruleFlags[k]))
	}

	sb.WriteString("Language model:\n")
	if a.Semantic.Failed() {
		fmt.Fprintf(sb, "  unavailable: %s\n", a.Semantic.Error)
	} else {
		semanticFlags := a.Semantic.Flags()
		for _, k := range model.SemanticKeys {
			fmt.Fprintf(sb, "  %-22s %s\n", humanize(k), yesNo(semanticFlags[k]))
		}
	}
	if a.CompanyError != "" {
		fmt.Fprintf(sb, "Company verification:\n  failed: %s\n", a.CompanyError)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCompany(sb *strings.Builder, c *model.CompanyFinding) {
	w.writeSection(sb, "COMPANY")
	fmt.Fprintf(sb, "  Name:         %s\n", c.Name)
	fmt.Fprintf(sb, "  Website:      %s\n", c.URL)
	fmt.Fprintf(sb, "  Trust Score:  %d/100\n", c.TrustScore)
	if w.verbose {
		for _, k := range sortedKeys(c.Indicators) {
			fmt.Fprintf(sb, "  %-22s %s\n", humanize(k), yesNo(c.Indicators[k]))
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeAction(sb *strings.Builder, action string) {
	w.writeSection(sb, "RECOMMENDED ACTION")
	fmt.Fprintf(sb, "  %s\n\n", action)
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by TrustGuard\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
