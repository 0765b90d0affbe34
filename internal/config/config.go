package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "trustguard"

	// DefaultLLMEndpoint is a locally hosted OpenAI-compatible server.
	DefaultLLMEndpoint = "http://127.0.0.1:8000/v1/chat/completions"

	// DefaultLLMModel is the model name sent with every completion request.
	DefaultLLMModel = "nvidia/nvidia-nemotron-nano-9b-v2"

	// DefaultLLMTimeout bounds a single semantic evaluation. When it expires
	// the posting is scored on rules and domain signals only.
	DefaultLLMTimeout = 30 * time.Second

	// DefaultCompanyTimeout bounds the whole company verification,
	// including the website fetch and the legitimacy judgment.
	DefaultCompanyTimeout = 45 * time.Second

	// DefaultBatchSize is the number of postings analyzed concurrently
	// when a list file is given.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies TrustGuard when fetching company websites.
	DefaultUserAgent = "TrustGuard/1.0 (+https://github.com/nao1215/trustguard)"

	// DefaultMaxBodySize limits how much of a company page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultCacheTTL is how long a company verification is reused.
	DefaultCacheTTL = 24 * time.Hour
)

// Config holds all runtime settings. Values come from NewConfig, then the
// YAML configuration file, then command line flags, in that order.
type Config struct {
	// LLMEndpoint is the chat completions URL of the semantic model.
	LLMEndpoint string

	// LLMModel is the model name passed to the endpoint.
	LLMModel string

	// LLMAPIKey is sent as a bearer token. Empty means no authentication.
	LLMAPIKey string

	// LLMTimeout bounds one semantic evaluation.
	LLMTimeout time.Duration

	// CompanyTimeout bounds one company verification.
	CompanyTimeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy (host:port) for company fetches.
	ProxyAddress string

	UserAgent   string
	MaxBodySize int64

	// Offline skips both the semantic model and company verification.
	// Postings are then scored by rules and domain reputation alone.
	Offline bool

	Verbose bool

	// BatchSize is the number of concurrent analyses for list input.
	BatchSize int

	JSONReport     bool
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// DBDir is the directory holding the analysis history database.
	DBDir string

	// SaveToDB stores every analysis in the history database.
	SaveToDB bool

	// RedisURL enables the shared company cache. When empty the company
	// cache lives in the history database.
	RedisURL string

	// CacheTTL is how long a cached company verification stays valid.
	CacheTTL time.Duration

	// ConfigFilePath is an explicit configuration file path.
	ConfigFilePath string

	// Weights overrides individual entries of the scoring weight table.
	Weights map[string]int

	// SuspiciousTLDs replaces the built-in suspicious TLD list when set.
	SuspiciousTLDs []string

	// FreeHosts replaces the built-in free hosting list when set.
	FreeHosts []string

	// ExtraFeePhrases are appended to the built-in hidden fee phrases.
	ExtraFeePhrases []string
}

// NewConfig returns a Config with sensible default values.
func NewConfig() *Config {
	return &Config{
		LLMEndpoint:    DefaultLLMEndpoint,
		LLMModel:       DefaultLLMModel,
		LLMTimeout:     DefaultLLMTimeout,
		CompanyTimeout: DefaultCompanyTimeout,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		BatchSize:      DefaultBatchSize,
		DBDir:          XDGDataDir(),
		CacheTTL:       DefaultCacheTTL,
	}
}

// XDGDataDir returns the XDG data directory for TrustGuard.
// This is typically ~/.local/share/trustguard on Linux.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for TrustGuard.
// This is typically ~/.config/trustguard on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// Input presence is checked separately by ValidateInput because the
// history and compare commands do not take a posting.
func (c *Config) Validate() error {
	if c.LLMTimeout <= 0 || c.CompanyTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if !c.Offline {
		u, err := url.Parse(c.LLMEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidEndpoint
		}
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}

	for _, w := range c.Weights {
		if w < 0 {
			return ErrInvalidWeight
		}
	}

	return nil
}

// ValidateInput reports ErrNoInput when neither posting text nor a list
// file was supplied.
func ValidateInput(text, listFile string) error {
	if text == "" && listFile == "" {
		return ErrNoInput
	}
	return nil
}
