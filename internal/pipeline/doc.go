// Package pipeline drives the conversion run: download, extract, correct,
// convert, register, cleanup.
//
// The orchestrator walks each selected particle kind through the stages in
// order. Download and extract are independently skippable, so a run may start
// from a pre-populated directory tree. Physical I/O is delegated to the
// collaborators (fetcher, unzip client, converter tool); the orchestrator
// owns ordering, special-case dispatch, warning accumulation, and manifest
// registration. All stage failures abort the run except known data defects,
// which are collected and surfaced after the manifest is written.
package pipeline
