// Package download fetches release archives over HTTP.
//
// Fetches stream to a temporary sibling file and rename into place so an
// interrupted download never leaves a truncated archive behind. The IAEA
// mirrors require a browser User-Agent and some of them present certificates
// that fail verification, so the fetcher supports relaxing TLS verification
// per run.
package download
