package model

import "encoding/json"

// RiskLevel is the categorical label of a single-entity risk score.
type RiskLevel int

const (
	// RiskLevelLikelySafe is assigned when the risk score is below 30.
	RiskLevelLikelySafe RiskLevel = iota

	// RiskLevelSuspicious is assigned when the risk score is in [30, 60).
	RiskLevelSuspicious

	// RiskLevelLikelyScam is assigned when the risk score is 60 or more.
	RiskLevelLikelyScam
)

// String returns the label shown to users.
func (l RiskLevel) String() string {
	switch l {
	case RiskLevelLikelySafe:
		return "Likely Safe"
	case RiskLevelSuspicious:
		return "Suspicious"
	case RiskLevelLikelyScam:
		return "Likely Scam"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the level as its label.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a label produced by MarshalJSON.
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Likely Scam":
		*l = RiskLevelLikelyScam
	case "Suspicious":
		*l = RiskLevelSuspicious
	default:
		*l = RiskLevelLikelySafe
	}
	return nil
}

// VerifiedLabel is the label of a job+company blended score.
type VerifiedLabel int

const (
	// VerifiedCriticalRisk is assigned below 30.
	VerifiedCriticalRisk VerifiedLabel = iota

	// VerifiedHighRisk is assigned in [30, 50).
	VerifiedHighRisk

	// VerifiedMediumRisk is assigned in [50, 70).
	VerifiedMediumRisk

	// VerifiedLowRisk is assigned at 70 or more.
	VerifiedLowRisk
)

// String returns the label with its "(Verified)" qualifier.
func (v VerifiedLabel) String() string {
	switch v {
	case VerifiedLowRisk:
		return "Low Risk (Verified)"
	case VerifiedMediumRisk:
		return "Medium Risk (Verified)"
	case VerifiedHighRisk:
		return "High Risk (Verified)"
	case VerifiedCriticalRisk:
		return "Critical Risk (Verified)"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the label as its string form.
func (v VerifiedLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a label produced by MarshalJSON.
func (v *VerifiedLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Low Risk (Verified)":
		*v = VerifiedLowRisk
	case "Medium Risk (Verified)":
		*v = VerifiedMediumRisk
	case "High Risk (Verified)":
		*v = VerifiedHighRisk
	default:
		*v = VerifiedCriticalRisk
	}
	return nil
}
