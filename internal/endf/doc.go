// Package endf handles the fixed-column ENDF record stream: identifying an
// evaluation's target nuclide from its head record and splitting a
// concatenated multi-evaluation file into one file per nuclide.
//
// ENDF files carry no per-evaluation framing. The only boundary marker is the
// sequence number in the trailing columns of every record, which restarts
// when a new evaluation begins; the Splitter partitions the stream on that
// signal alone.
package endf
