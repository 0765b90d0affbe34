// Package posting turns a job posting web page into analyzable text.
//
// Scraper fetches the posting, drops navigation and legal boilerplate,
// and detects the hiring company's name and website so that the company
// can be verified without the user looking it up.
package posting
