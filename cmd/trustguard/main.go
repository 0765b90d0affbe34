// Package main provides the entry point for the TrustGuard CLI.
//
// TrustGuard scores job postings for signs of recruitment fraud. It combines
// text heuristics, domain reputation, a local language model and company
// website verification into a single trust score with human readable reasons.
//
// Usage:
//
//	trustguard analyze --file posting.txt --url https://careers.example.com/apply
//	trustguard analyze --list postings.yaml --json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
