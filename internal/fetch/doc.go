// Package fetch downloads and parses company websites.
//
// The HTTP client can route through a SOCKS5 proxy for users who need
// to hide their address from the sites they verify. Pages are parsed
// with golang.org/x/net/html into the visible text, links and metadata
// the company evaluator inspects.
package fetch
