// Package log provides secure logging built on the standard slog package.
//
// The SecureHandler sanitizes every record before it reaches the
// underlying handler:
//   - credentials (API keys, bearer tokens, passwords in URLs) are masked
//   - posting and applicant text is replaced by its length
//   - e-mail addresses and phone numbers inside other values are replaced
//
// Job postings routinely carry a recruiter's phone number or the
// applicant's own profile, so even verbose logs never contain them.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("calling model", "endpoint", endpoint, "text", posting)
//	// text="[redacted 512 bytes]"
//	slog.SetDefault(logger)
package log
