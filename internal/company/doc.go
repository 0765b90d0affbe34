// Package company estimates how legitimate a hiring company's website is.
//
// WebsiteEvaluator fetches the home page, looks for the pages and
// statements real employers publish (about, contact, careers, privacy,
// terms, registration details) and penalizes get-rich-quick language.
// An optional Judge, usually a language model, adjusts the score and
// contributes observations. CachedEvaluator memoizes results per host.
package company
