// Package semantic obtains a language model's judgment of a job posting.
//
// Adapter is the transport-facing contract. ChatClient implements it
// against any OpenAI-compatible chat completions endpoint.
//
// Guard is what the rest of TrustGuard calls. It applies the local
// fail-secure override for postings that call themselves fake or a scam,
// bounds each call with a timeout, and converts every failure into a
// neutral finding carrying the error text. Guard.Evaluate never returns
// an error.
package semantic
