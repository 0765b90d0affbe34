// Package reputation scores the URL a job posting points to.
//
// Each check contributes an independent risk deduction:
//   - an insecure scheme adds 20
//   - a TLD from the suspicious set adds 10
//   - hosting on a free website platform adds 25
//
// The sum is left unbounded here. The score combiner clamps it.
// The package also exposes the host helpers the rule checks use to find
// the registrable label of a link.
package reputation
