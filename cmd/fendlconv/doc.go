// Command fendlconv downloads FENDL nuclear data releases and converts them
// into an HDF5 cross section library with a cross_sections.xml index.
package main
