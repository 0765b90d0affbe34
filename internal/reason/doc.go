// Package reason turns findings into the human-readable explanation list
// attached to every analysis. Reasons are deduplicated by exact text and
// keep the order in which they were first added.
package reason
