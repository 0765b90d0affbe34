// Package scoring fuses the rule, semantic, domain and company signals
// into bounded trust scores and labels.
//
// Risk points are additive: every true rule finding contributes its
// weight, a semantic phishing verdict contributes the phishing weight,
// and the semantic score and the domain deduction are added as-is. The
// sum is clamped to 100 and the trust score is its complement.
//
// When a company score is available the job trust score is blended with
// it at 60/40 and labelled with a "(Verified)" qualifier.
package scoring
