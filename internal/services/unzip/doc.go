// Package unzip mediates access to the external unzip tool used for archive
// extraction.
//
// The FENDL releases were compressed with a zip method the stock archive
// readers reject, so extraction shells out the same way the original
// distribution pipeline does. Unlike that pipeline, the exit status is
// checked and surfaced as an extraction error.
package unzip
