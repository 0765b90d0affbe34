package model

import "slices"

// Comparison describes how a posting's verdict changed between two analyses.
type Comparison struct {
	Previous *Verdict `json:"previous"`
	Current  *Verdict `json:"current"`

	// TrustDelta is current minus previous displayed trust score.
	TrustDelta int `json:"trust_delta"`

	LabelChanged   bool     `json:"label_changed"`
	AddedReasons   []string `json:"added_reasons"`
	RemovedReasons []string `json:"removed_reasons"`
}

// NewComparison compares two analyses of the same posting.
// The displayed score is the combined score when one exists.
func NewComparison(previous, current *Analysis) *Comparison {
	prev := NewVerdict(previous)
	cur := NewVerdict(current)

	c := &Comparison{
		Previous:       prev,
		Current:        cur,
		TrustDelta:     cur.DisplayScore() - prev.DisplayScore(),
		LabelChanged:   prev.Label != cur.Label,
		AddedReasons:   make([]string, 0),
		RemovedReasons: make([]string, 0),
	}
	for _, r := range cur.Reasons {
		if !slices.Contains(prev.Reasons, r) {
			c.AddedReasons = append(c.AddedReasons, r)
		}
	}
	for _, r := range prev.Reasons {
		if !slices.Contains(cur.Reasons, r) {
			c.RemovedReasons = append(c.RemovedReasons, r)
		}
	}
	return c
}
