package semantic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/trustguard/internal/model"
)

// errNoJSONObject is returned when model output holds no JSON object.
var errNoJSONObject = errors.New("model output does not contain a JSON object")

// Bounds of a decoded score.
const (
	minScore = 0
	maxScore = 100
)

// score decodes a model score given as a number, a numeric string or null.
type score struct {
	value int
	set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *score) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("invalid score %s: %w", data, err)
	}
	if math.IsNaN(f) {
		return fmt.Errorf("invalid score %s: not a number", data)
	}
	// Clamp before converting: out-of-range float to int conversion is
	// implementation-defined.
	s.value = int(math.Round(min(max(f, minScore), maxScore)))
	s.set = true
	return nil
}

func (s score) or(def int) int {
	if !s.set {
		return def
	}
	return s.value
}

// flag decodes a model boolean given as true/false, "true"/"yes" or null.
type flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *flag) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`)) {
	case "true", "yes", "1":
		*f = true
	case "false", "no", "0", "null", "":
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}

// rawFinding mirrors the JSON the model is asked to produce.
// Unknown keys are ignored and missing keys decode to false or zero.
type rawFinding struct {
	PhishingAttempt   flag  `json:"phishing_attempt"`
	HiddenFees        flag  `json:"hidden_fees"`
	DomainMismatch    flag  `json:"domain_mismatch"`
	MessagingApps     flag  `json:"messaging_apps"`
	UnrealisticSalary flag  `json:"unrealistic_salary"`
	VagueRole         flag  `json:"vague_role"`
	CompanyUnclear    flag  `json:"company_unclear"`
	LLMScore          score `json:"llm_score"`
}

// DecodeFinding parses model output into a SemanticFinding.
// Markdown code fences and prose around the JSON object are tolerated.
func DecodeFinding(content string) (model.SemanticFinding, error) {
	obj, err := extractJSONObject(content)
	if err != nil {
		return model.SemanticFinding{}, err
	}

	var raw rawFinding
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return model.SemanticFinding{}, fmt.Errorf("failed to decode model finding: %w", err)
	}

	return model.SemanticFinding{
		PhishingAttempt:   bool(raw.PhishingAttempt),
		HiddenFees:        bool(raw.HiddenFees),
		DomainMismatch:    bool(raw.DomainMismatch),
		MessagingApps:     bool(raw.MessagingApps),
		UnrealisticSalary: bool(raw.UnrealisticSalary),
		VagueRole:         bool(raw.VagueRole),
		CompanyUnclear:    bool(raw.CompanyUnclear),
		LLMScore:          raw.LLMScore.or(0),
	}, nil
}

type rawJudgment struct {
	AppearsLegitimate flag     `json:"appears_legitimate"`
	AppearsFraudulent flag     `json:"appears_fraudulent"`
	HasRedFlags       flag     `json:"has_red_flags"`
	ProvidesClearInfo flag     `json:"provides_clear_info"`
	LegitimacyScore   score    `json:"legitimacy_score"`
	KeyObservations   []string `json:"key_observations"`
}

// DecodeJudgment parses model output into a LegitimacyJudgment.
// A missing legitimacy score defaults to the neutral score.
func DecodeJudgment(content string) (model.LegitimacyJudgment, error) {
	obj, err := extractJSONObject(content)
	if err != nil {
		return model.LegitimacyJudgment{}, err
	}

	var raw rawJudgment
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return model.LegitimacyJudgment{}, fmt.Errorf("failed to decode legitimacy judgment: %w", err)
	}

	return model.LegitimacyJudgment{
		AppearsLegitimate: bool(raw.AppearsLegitimate),
		AppearsFraudulent: bool(raw.AppearsFraudulent),
		HasRedFlags:       bool(raw.HasRedFlags),
		ProvidesClearInfo: bool(raw.ProvidesClearInfo),
		LegitimacyScore:   raw.LegitimacyScore.or(model.NeutralLegitimacyScore),
		KeyObservations:   raw.KeyObservations,
	}, nil
}

// extractJSONObject strips code fences and returns the outermost {...} span.
func extractJSONObject(content string) (string, error) {
	s := strings.TrimSpace(content)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = strings.TrimPrefix(strings.TrimPrefix(rest, "json"), "JSON")
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", errNoJSONObject
	}
	return s[start : end+1], nil
}
