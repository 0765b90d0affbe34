package config

import "time"

// LLMSection configures the semantic model endpoint.
type LLMSection struct {
	Endpoint string        `yaml:"endpoint,omitempty"`
	Model    string        `yaml:"model,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// ReputationSection replaces the built-in domain reputation tables.
type ReputationSection struct {
	SuspiciousTLDs []string `yaml:"suspiciousTlds,omitempty"`
	FreeHosts      []string `yaml:"freeHosts,omitempty"`
}

// RulesSection extends the rule heuristics.
type RulesSection struct {
	// ExtraFeePhrases are matched in addition to the built-in hidden fee phrases.
	ExtraFeePhrases []string `yaml:"extraFeePhrases,omitempty"`
}

// CompanySection configures company website verification.
type CompanySection struct {
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	Proxy       string        `yaml:"proxy,omitempty"`
	UserAgent   string        `yaml:"userAgent,omitempty"`
	MaxBodySize int64         `yaml:"maxBodySize,omitempty"`
}

// CacheSection configures the company result cache.
type CacheSection struct {
	RedisURL string        `yaml:"redisURL,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// DatabaseSection configures the analysis history database.
type DatabaseSection struct {
	Dir  string `yaml:"dir,omitempty"`
	Save *bool  `yaml:"save,omitempty"`
}

// BatchSection configures list processing.
type BatchSection struct {
	Size int `yaml:"size,omitempty"`
}

// File represents the structure of the TrustGuard configuration file.
// Zero values mean "keep the current setting".
type File struct {
	LLM LLMSection `yaml:"llm,omitempty"`

	// Weights overrides entries of the scoring weight table by finding key,
	// for example hidden_fees: 30.
	Weights map[string]int `yaml:"weights,omitempty"`

	Reputation ReputationSection `yaml:"reputation,omitempty"`
	Rules      RulesSection      `yaml:"rules,omitempty"`
	Company    CompanySection    `yaml:"company,omitempty"`
	Cache      CacheSection      `yaml:"cache,omitempty"`
	Database   DatabaseSection   `yaml:"database,omitempty"`
	Batch      BatchSection      `yaml:"batch,omitempty"`
}

// Apply copies every setting present in the file onto c.
func (f *File) Apply(c *Config) {
	setString(&c.LLMEndpoint, f.LLM.Endpoint)
	setString(&c.LLMModel, f.LLM.Model)
	setDuration(&c.LLMTimeout, f.LLM.Timeout)

	if len(f.Weights) > 0 {
		if c.Weights == nil {
			c.Weights = make(map[string]int, len(f.Weights))
		}
		for k, v := range f.Weights {
			c.Weights[k] = v
		}
	}

	if len(f.Reputation.SuspiciousTLDs) > 0 {
		c.SuspiciousTLDs = f.Reputation.SuspiciousTLDs
	}
	if len(f.Reputation.FreeHosts) > 0 {
		c.FreeHosts = f.Reputation.FreeHosts
	}
	c.ExtraFeePhrases = append(c.ExtraFeePhrases, f.Rules.ExtraFeePhrases...)

	setDuration(&c.CompanyTimeout, f.Company.Timeout)
	setString(&c.ProxyAddress, f.Company.Proxy)
	setString(&c.UserAgent, f.Company.UserAgent)
	if f.Company.MaxBodySize != 0 {
		c.MaxBodySize = f.Company.MaxBodySize
	}

	setString(&c.RedisURL, f.Cache.RedisURL)
	setDuration(&c.CacheTTL, f.Cache.TTL)

	setString(&c.DBDir, f.Database.Dir)
	if f.Database.Save != nil {
		c.SaveToDB = *f.Database.Save
	}

	if f.Batch.Size != 0 {
		c.BatchSize = f.Batch.Size
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
