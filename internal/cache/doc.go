// Package cache stores company verification results in Redis so that
// repeated postings from the same employer skip the website fetch and
// the model call.
package cache
