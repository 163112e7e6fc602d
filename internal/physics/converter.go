package physics

import "context"

// LibVer selects the HDF5 versioning policy for produced containers.
type LibVer string

const (
	// LibVerEarliest favors backwards compatibility of the output files.
	LibVerEarliest LibVer = "earliest"
	// LibVerLatest favors read performance.
	LibVerLatest LibVer = "latest"
)

// Valid reports whether the policy is one of the supported values.
func (v LibVer) Valid() bool {
	return v == LibVerEarliest || v == LibVerLatest
}

// Converter turns one evaluation file into an HDF5 container.
type Converter interface {
	// ConvertACE builds an incident-neutron container from an ACE table.
	ConvertACE(ctx context.Context, inputPath, outputPath string, libver LibVer) error
	// ConvertENDF builds an incident-photon container from an ENDF evaluation.
	ConvertENDF(ctx context.Context, inputPath, outputPath string, libver LibVer) error
}
