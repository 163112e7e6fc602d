// Package catalog holds the static description of every supported FENDL
// release: source URLs, archive manifests, published sizes, and the
// file-discovery patterns used after extraction.
//
// The table is fixed at compile time. Selecting an unsupported release or
// particle kind fails with a configuration error before any I/O happens.
// Discovery patterns are deliberately lazy: they describe where converted
// inputs will appear once extraction has populated the staging directories,
// and must not be resolved before then.
package catalog
