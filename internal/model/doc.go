// Package model defines the records exchanged between the TrustGuard
// evaluators, the score combiner, the history database and the report writers.
//
// The main types are:
//   - RuleFindings, DomainFinding, SemanticFinding, CompanyFinding: per-signal results
//   - ScoreResult, CombinedResult: bounded scores and their labels
//   - Analysis: the full record of one run
//   - Verdict: the summarized response
//
// All records are plain values that serialize to JSON for reports and storage.
package model
