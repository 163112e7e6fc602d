// Package services defines the error taxonomy shared by the pipeline stages
// and their external collaborators.
//
// Stage code tags failures with one of the exported sentinel errors so the
// orchestrator and CLI can classify them with errors.Is: configuration
// problems abort before any I/O, network/extraction/parse failures abort the
// run, and known data defects are collected as warnings without stopping the
// pipeline.
//
// Subprocess collaborators (the unzip client, the converter tool) live in
// subpackages and wrap their failures with these sentinels.
package services
