// Package physics is the boundary to the external physics-data library that
// parses evaluations and writes HDF5 containers.
//
// The pipeline never decodes cross-section content itself; it identifies the
// target nuclide of each input (ACE table header or ENDF head record) to
// derive deterministic output names, and delegates the actual conversion to
// a converter tool behind the Converter interface. Tests substitute fakes.
package physics
