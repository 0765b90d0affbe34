package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/trustguard/internal/config"
	"github.com/nao1215/trustguard/internal/credential"
	"github.com/nao1215/trustguard/internal/model"
	"github.com/nao1215/trustguard/internal/pipeline"
	"github.com/nao1215/trustguard/internal/report"
)

// maxPostingSize caps posting text read from a flag, file or stdin.
const maxPostingSize = 100 * 1024

var (
	errPostingTooLarge = fmt.Errorf("posting text exceeds %d bytes", maxPostingSize)
	errEmptyList       = errors.New("list file contains no postings")
	errAnalysisFailed  = errors.New("analysis failed")
)

// analyzeInput is the posting input collected from flags and stdin.
type analyzeInput struct {
	requests []model.Request
	batch    bool

	// scrape means the single request has only a URL and its text is
	// read from the posting page.
	scrape bool
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a job posting for signs of fraud",
		Long: `Analyze scores one or more job postings and explains the result.

The posting text is taken from --text, --file or standard input. Given only
--url, the posting page is downloaded and its text analyzed; the company
website is detected from the page unless --company-url is set. Each posting
is checked for:
- Scam phrases such as fees, deposits and off-platform messaging
- Unrealistic pay for few hours and vague role descriptions
- Reputation of the application link (HTTPS, TLD, free hosting)
- A local language model's judgment of the text
- The hiring company's website, when --company-url is given

Examples:
  # Analyze a posting saved in a file
  trustguard analyze --file posting.txt --url https://careers.example.com/apply

  # Download a posting and verify the company it names
  trustguard analyze --url https://careers.example.com/jobs/42

  # Pipe a posting and verify the company
  pbpaste | trustguard analyze --company-url https://acme.com

  # Analyze many postings from a YAML or JSON list
  trustguard analyze --list postings.yaml --json

  # Rules and domain checks only, without any network access
  trustguard analyze --offline --text "Pay a registration fee of Rs. 2,000"

List file example (YAML):
  - text: "Work from home, 2 hours daily, earn Rs. 50,000 per week"
    url: http://jobs-offer.xyz/apply
  - text: "Backend engineer at Acme. Contact: Jane Doe, hiring manager"
    url: https://acme.com/careers/123
    companyURL: https://acme.com`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	// Input flags
	cmd.Flags().StringP("text", "t", "", "Posting text")
	cmd.Flags().StringP("file", "f", "", "Read posting text from file (\"-\" for stdin)")
	cmd.Flags().StringP("url", "u", "", "Address of the posting or its application link")
	cmd.Flags().String("company-url", "", "Company website to verify")
	cmd.Flags().String("context", "", "Background for the language model, such as the applicant's profile")
	cmd.Flags().StringP("list", "l", "", "YAML or JSON file with a list of postings")

	// Engine flags
	cmd.Flags().Bool("offline", false, "Skip the language model and company verification")
	cmd.Flags().String("llm-endpoint", config.DefaultLLMEndpoint, "OpenAI-compatible chat completions endpoint")
	cmd.Flags().String("model", config.DefaultLLMModel, "Language model name")
	cmd.Flags().Duration("llm-timeout", config.DefaultLLMTimeout, "Timeout for one language model call")
	cmd.Flags().Duration("company-timeout", config.DefaultCompanyTimeout, "Timeout for one company verification")
	cmd.Flags().String("api-key", "", "Language model API key (default: $TRUSTGUARD_LLM_API_KEY or keyring)")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for company website requests (host:port)")
	cmd.Flags().String("redis-url", "", "Redis URL for the shared company cache")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize, "Number of concurrent analyses for --list")

	// Report flags
	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed); a single analysis is also printed as text")
	cmd.Flags().Bool("brief", false, "Output only the verdict")
	cmd.Flags().BoolP("save", "s", false, "Save the analysis to the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd, getVerboseFlag(cmd))

	cfg, err := buildAnalyzeConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	input, err := readAnalyzeInput(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	if input.scrape {
		req := &input.requests[0]
		if err := eng.scrape(ctx, req); err != nil {
			return fmt.Errorf("failed to read posting from %s: %w", req.URL, err)
		}
	}

	brief, err := cmd.Flags().GetBool("brief")
	if err != nil {
		return err
	}

	out, closeOutput, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := newReportWriter(cfg, out, !input.batch)
	if cfg.ReportFile != "" && !input.batch {
		// A single report written to a file is also shown on the terminal.
		writer = report.NewMultiWriter(writer, report.NewSimpleWriter(cmd.OutOrStdout()))
	}
	emit := func(a *model.Analysis) error {
		if brief {
			_, err := writer.WriteVerdict(model.NewVerdict(a))
			return err
		}
		_, err := writer.Write(a)
		return err
	}

	if input.batch {
		return runBatchAnalysis(ctx, cmd, eng, cfg, input.requests, emit)
	}

	return analyzeOne(ctx, eng, input.requests[0], emit)
}

// analyzeOne analyzes a single request and writes its report. A step
// failure such as a failed save is reported after the report is written.
func analyzeOne(ctx context.Context, eng *engine, req model.Request, emit func(*model.Analysis) error) error {
	analysis, err := eng.pipeline().Analyze(ctx, req)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("analysis cancelled: %w", err)
	}
	if err := emit(analysis); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if analysis.Error != "" {
		return fmt.Errorf("%w: %s", errAnalysisFailed, analysis.Error)
	}
	return nil
}

// runBatchAnalysis analyzes every request with bounded concurrency and
// writes each report as soon as it is ready.
func runBatchAnalysis(
	ctx context.Context,
	cmd *cobra.Command,
	eng *engine,
	cfg *config.Config,
	requests []model.Request,
	emit func(*model.Analysis) error,
) error {
	progress := cmd.ErrOrStderr()
	fmt.Fprintf(progress, "Analyzing %d postings (concurrency: %d)...\n", len(requests), cfg.BatchSize)
	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		eng.pipeline,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(eng.logger),
	)

	var (
		mu        sync.Mutex
		completed int
		failed    int
		writeErr  error
	)
	err := bp.ProcessBatchWithCallback(ctx, requests, func(a *model.Analysis, index int) {
		mu.Lock()
		defer mu.Unlock()

		completed++
		if a.Error != "" {
			failed++
		}
		fmt.Fprintf(progress, "[%d/%d] #%d %s: %s\n",
			completed, len(requests), index+1, orNone(a.Request.URL), a.Label())

		if err := emit(a); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("failed to write report for posting #%d: %w", index+1, err)
		}
	})

	fmt.Fprintf(progress, "Batch analysis completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	if err != nil {
		return fmt.Errorf("batch analysis cancelled: %w", err)
	}
	if writeErr != nil {
		return writeErr
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d postings", errAnalysisFailed, failed, len(requests))
	}
	return nil
}

// buildAnalyzeConfig loads the configuration and applies the analyze flags.
// Only flags set on the command line override the configuration file.
func buildAnalyzeConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	stringFlags := map[string]*string{
		"llm-endpoint": &cfg.LLMEndpoint,
		"model":        &cfg.LLMModel,
		"proxy":        &cfg.ProxyAddress,
		"redis-url":    &cfg.RedisURL,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return nil, err
			}
		}
	}

	durationFlags := map[string]*time.Duration{
		"llm-timeout":     &cfg.LLMTimeout,
		"company-timeout": &cfg.CompanyTimeout,
	}
	for name, dst := range durationFlags {
		if flags.Changed(name) {
			if *dst, err = flags.GetDuration(name); err != nil {
				return nil, err
			}
		}
	}

	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("save") {
		if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
			return nil, err
		}
	}
	if cfg.Offline, err = flags.GetBool("offline"); err != nil {
		return nil, err
	}

	if !cfg.Offline {
		apiKey, err := flags.GetString("api-key")
		if err != nil {
			return nil, err
		}
		key, source, err := credential.ResolveAPIKey(apiKey)
		if err != nil {
			logger.Warn("could not read api key from keyring", "error", err)
		}
		cfg.LLMAPIKey = key
		logger.Debug("resolved language model api key", "source", string(source))
	}

	return cfg, nil
}

// readAnalyzeInput collects the requests to analyze.
func readAnalyzeInput(cmd *cobra.Command, cfg *config.Config) (*analyzeInput, error) {
	flags := cmd.Flags()

	listFile, err := flags.GetString("list")
	if err != nil {
		return nil, err
	}
	if listFile != "" {
		requests, err := loadRequests(listFile)
		if err != nil {
			return nil, err
		}
		return &analyzeInput{requests: requests, batch: true}, nil
	}

	text, err := readPosting(cmd)
	if err != nil {
		return nil, err
	}

	req := model.Request{Text: text}
	if req.URL, err = flags.GetString("url"); err != nil {
		return nil, err
	}
	if req.CompanyURL, err = flags.GetString("company-url"); err != nil {
		return nil, err
	}
	if req.Context, err = flags.GetString("context"); err != nil {
		return nil, err
	}

	// Offline runs cannot download the posting.
	if text == "" && req.URL != "" && !cfg.Offline {
		return &analyzeInput{requests: []model.Request{req}, scrape: true}, nil
	}
	if err := config.ValidateInput(text, listFile); err != nil {
		return nil, err
	}
	return &analyzeInput{requests: []model.Request{req}}, nil
}

// readPosting returns the posting text from --text, --file or a piped stdin.
// An interactive terminal on stdin yields empty text.
func readPosting(cmd *cobra.Command) (string, error) {
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return "", err
	}
	if text != "" {
		return checkPosting(text)
	}

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", err
	}

	var in io.Reader
	switch {
	case file == "-":
		in = cmd.InOrStdin()
	case file != "":
		f, err := os.Open(file) //nolint:gosec // User-provided posting path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to open posting file: %w", err)
		}
		defer f.Close()
		in = f
	default:
		in = cmd.InOrStdin()
		if f, ok := in.(*os.File); ok {
			if st, err := f.Stat(); err != nil || st.Mode()&os.ModeCharDevice != 0 {
				return "", nil
			}
		}
	}

	data, err := io.ReadAll(io.LimitReader(in, maxPostingSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read posting: %w", err)
	}
	return checkPosting(string(data))
}

func checkPosting(text string) (string, error) {
	if len(text) > maxPostingSize {
		return "", errPostingTooLarge
	}
	return strings.TrimSpace(text), nil
}

// loadRequests reads a list of postings. Files ending in .json are decoded
// as JSON with the report field names; anything else is read as YAML.
func loadRequests(path string) ([]model.Request, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	var requests []model.Request
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &requests)
	} else {
		err = yaml.Unmarshal(data, &requests)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse list file %s: %w", path, err)
	}

	if len(requests) == 0 {
		return nil, errEmptyList
	}
	for i := range requests {
		requests[i].Text = strings.TrimSpace(requests[i].Text)
		if requests[i].Text == "" {
			return nil, fmt.Errorf("posting #%d in %s: %w", i+1, path, config.ErrNoInput)
		}
		if len(requests[i].Text) > maxPostingSize {
			return nil, fmt.Errorf("posting #%d in %s: %w", i+1, path, errPostingTooLarge)
		}
	}
	return requests, nil
}

// newReportWriter picks the writer for the configured format. JSON is
// pretty printed only for a single report so that batch output stays one
// document per line.
func newReportWriter(cfg *config.Config, out io.Writer, pretty bool) report.Writer {
	switch {
	case cfg.JSONReport:
		var opts []report.JSONWriterOption
		if pretty {
			opts = append(opts, report.WithPrettyPrint())
		}
		return report.NewFullJSONWriter(out, getVersion(), opts...)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// openOutput returns the report destination and a function that closes it.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports quote posting text, so only the owner may read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func orNone(s string) string {
	if s == "" {
		return "(no url)"
	}
	return s
}
