// Package specialcase carries the per-release data-correction rules the
// pipeline applies around extraction and conversion.
//
// Each rule is keyed by (release, particle, stage, filename) and operates on
// files inside an explicit working directory; nothing here touches the
// process working directory. A rule either flags its file as unusable with a
// warning (known data defects in a release) or rewrites the directory
// contents in place (splitting a multi-evaluation ENDF file into per-nuclide
// files).
package specialcase
