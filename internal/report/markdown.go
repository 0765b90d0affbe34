package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/trustguard/internal/model"
)

// MarkdownWriter outputs reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the complete analysis.
func (w *MarkdownWriter) Write(analysis *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)
	verdict := model.NewVerdict(analysis)

	w.writeHeader(md, verdict, analysis.Request.CompanyURL)
	w.writeAlert(md, analysis)
	w.writeBreakdown(md, analysis)
	w.writeReasons(md, verdict.Reasons)
	w.writeFindings(md, analysis)
	if analysis.Company != nil {
		w.writeCompany(md, analysis.Company)
	}
	w.writeAction(md, verdict.RecommendedAction)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteVerdict outputs the verdict only.
func (w *MarkdownWriter) WriteVerdict(verdict *model.Verdict) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, verdict, "")
	w.writeReasons(md, verdict.Reasons)
	w.writeAction(md, verdict.RecommendedAction)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteComparison outputs the change between two analyses.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("TrustGuard Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Date", "Label", "Score"},
		Rows: [][]string{
			{"Previous", c.Previous.DateAnalyzed.Format(dateFormat), c.Previous.Label, strconv.Itoa(c.Previous.DisplayScore())},
			{"Current", c.Current.DateAnalyzed.Format(dateFormat), c.Current.Label, strconv.Itoa(c.Current.DisplayScore())},
		},
	})
	md.PlainText("")

	switch {
	case c.TrustDelta < 0:
		md.Warningf("Trust score dropped by %d points.", -c.TrustDelta)
	case c.TrustDelta > 0:
		md.Note(fmt.Sprintf("Trust score rose by %d points.", c.TrustDelta))
	default:
		md.Note("Trust score unchanged.")
	}
	md.PlainText("")

	md.H2("Reason Changes")
	md.PlainText("")
	if len(c.AddedReasons) == 0 && len(c.RemovedReasons) == 0 {
		md.PlainText("No changes.")
		md.PlainText("")
	}
	if len(c.AddedReasons) > 0 {
		md.H3("Added")
		md.BulletList(c.AddedReasons...)
		md.PlainText("")
	}
	if len(c.RemovedReasons) > 0 {
		md.H3("Removed")
		md.BulletList(c.RemovedReasons...)
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, v *model.Verdict, companyURL string) {
	md.H1("TrustGuard Analysis")
	md.PlainText("")

	rows := [][]string{
		{"Analysis ID", "`" + v.ID + "`"},
		{"Date", v.DateAnalyzed.Format(dateFormat)},
		{"URL", orDash(v.URL)},
		{"Label", "**" + v.Label + "**"},
		{"Trust Score", strconv.Itoa(v.TrustScore) + "/100"},
	}
	if companyURL != "" {
		rows = append(rows, []string{"Company URL", companyURL})
	}
	if v.CombinedTrustScore != nil {
		rows = append(rows, []string{"Combined Score", strconv.Itoa(*v.CombinedTrustScore) + "/100"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert picks the alert style from the displayed label.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, a *model.Analysis) {
	if a.Semantic.Failed() {
		md.Note("The language model was unavailable. Results are based on rules only.")
		md.PlainText("")
	}

	level := a.Score.RiskLevel
	if a.Combined != nil {
		switch a.Combined.Label {
		case model.VerifiedLowRisk:
			level = model.RiskLevelLikelySafe
		case model.VerifiedMediumRisk:
			level = model.RiskLevelSuspicious
		default:
			level = model.RiskLevelLikelyScam
		}
	}

	switch level {
	case model.RiskLevelLikelyScam:
		md.Cautionf("%s: this posting shows strong signs of fraud.", a.Label())
	case model.RiskLevelSuspicious:
		md.Warningf("%s: verify this posting independently before applying.", a.Label())
	default:
		md.Tip(fmt.Sprintf("%s: no strong warning signs were found.", a.Label()))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, a *model.Analysis) {
	md.H2("Score Breakdown")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Signal", "Risk Points"},
		Rows: [][]string{
			{"Rule heuristics", strconv.Itoa(a.Score.RuleScore)},
			{"Language model", strconv.Itoa(a.Score.LLMScore)},
			{"Domain reputation", strconv.Itoa(a.Score.DomainDeduction)},
			{"**Risk score (capped)**", "**" + strconv.Itoa(a.Score.RiskScore) + "**"},
		},
	})
	md.PlainText("")

	if a.Score.RuleScore+a.Score.LLMScore+a.Score.DomainDeduction > 0 {
		w.writePieChart(md, a.Score)
	}
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.ScoreResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Risk Point Sources"),
		piechart.WithShowData(true),
	)
	if s.RuleScore > 0 {
		chart.LabelAndIntValue("Rules", uint64(s.RuleScore))
	}
	if s.LLMScore > 0 {
		chart.LabelAndIntValue("Language model", uint64(s.LLMScore))
	}
	if s.DomainDeduction > 0 {
		chart.LabelAndIntValue("Domain", uint64(s.DomainDeduction))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeReasons(md *markdown.Markdown, reasons []string) {
	md.H2("Reasons")
	md.PlainText("")
	if len(reasons) == 0 {
		md.PlainText("No warning signs found.")
	} else {
		md.BulletList(reasons...)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, a *model.Analysis) {
	md.H2("Findings")
	md.PlainText("")

	rules := trueKeys(model.RuleKeys, a.Rules.Flags())
	semantic := trueKeys(model.SemanticKeys, a.Semantic.Flags())
	if len(rules) == 0 && len(semantic) == 0 {
		md.PlainText("No rule or language model findings.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(rules)+len(semantic))
	for _, k := range rules {
		rows = append(rows, []string{"Rule", humanize(k)})
	}
	for _, k := range semantic {
		rows = append(rows, []string{"Language model", humanize(k)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Finding"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCompany(md *markdown.Markdown, c *model.CompanyFinding) {
	md.H2("Company: " + c.Name)
	md.PlainText("")

	rows := make([][]string, 0, len(c.Indicators)+1)
	rows = append(rows, []string{"Trust Score", strconv.Itoa(c.TrustScore) + "/100"})
	for _, k := range sortedKeys(c.Indicators) {
		mark := "❌"
		if c.Indicators[k] {
			mark = "✅"
		}
		rows = append(rows, []string{humanize(k), mark})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Check", "Result"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(c.RiskFactors) > 0 {
		md.Details("Company risk factors", markdownList(c.RiskFactors))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeAction(md *markdown.Markdown, action string) {
	md.H2("Recommended Action")
	md.PlainText("")
	md.PlainText("**" + action + "**")
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by TrustGuard*")
}

func markdownList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return sb.String()
}
