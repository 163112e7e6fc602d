// Package library accumulates the produced HDF5 containers and writes the
// cross_sections.xml index the downstream transport code discovers them
// through.
//
// Registration keeps insertion order and rejects duplicate container paths.
// The index export is atomic; a concurrent reader never observes a partially
// written file.
package library
