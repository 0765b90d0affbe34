// Package pipeline runs a job posting analysis as a sequence of steps.
//
// The default pipeline normalizes the request, runs the local rule and
// domain checks, makes the semantic and company calls concurrently,
// combines the scores and finally aggregates the reasons. Each step
// reads and writes a shared *model.Analysis.
//
// BatchProcessor analyzes many postings with bounded concurrency using
// errgroup.
package pipeline
