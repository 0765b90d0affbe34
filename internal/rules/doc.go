// Package rules implements the deterministic text checks run against a job
// posting. Every check is a case-insensitive pattern match over the posting
// text and never fails: empty text simply yields no findings.
//
// The checks are:
//   - domain_mismatch: a link in the posting does not belong to the named company
//   - messaging_apps: the recruiter moves the conversation to a chat app
//   - hidden_fees: the applicant is asked for fees or deposits
//   - low_hours_high_pay: a few hours of work for a large payment
//   - vague_description: two or more generic duty phrases
//   - missing_manager_name: no hiring manager or recruiter is named
package rules
