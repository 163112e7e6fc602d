package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"fendlconv/internal/services"
)

// LibraryName is the nuclear data library this catalog describes.
const LibraryName = "fendl"

// Particle is an incident particle kind.
type Particle string

const (
	ParticleNeutron Particle = "neutron"
	ParticlePhoton  Particle = "photon"
)

// Format identifies the evaluation file format an archive contains.
type Format string

const (
	FormatACE  Format = "ace"
	FormatENDF Format = "endf"
)

// Discovery locates the extracted evaluation files for one particle kind.
// It is resolved only after the extract stage has populated the staging
// directory for the release.
type Discovery struct {
	Subdir string
	Glob   string
}

// Resolve expands the pattern under the given staging root and returns the
// matches sorted lexicographically for reproducible conversion order.
func (d Discovery) Resolve(root string) ([]string, error) {
	pattern := filepath.Join(root, d.Subdir, d.Glob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolve discovery pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ParticleSpec describes one (release, particle) entry.
type ParticleSpec struct {
	Release        string
	Particle       Particle
	BaseURL        string
	Files          []string
	Format         Format
	Discovery      Discovery
	CompressedMB   int
	UncompressedMB int
}

// Releases lists supported release versions, newest first.
func Releases() []string {
	return []string{"3.1d", "3.1a", "3.0", "2.1"}
}

// Particles lists supported incident particle kinds.
func Particles() []Particle {
	return []Particle{ParticleNeutron, ParticlePhoton}
}

// Select returns the specs for the requested release and particle kinds, in
// the order the particles were requested. Unknown values are configuration
// errors.
func Select(release string, particles []Particle) ([]ParticleSpec, error) {
	table, ok := releases[release]
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "select",
			fmt.Sprintf("unsupported release %q (supported: %s)", release, strings.Join(Releases(), ", ")), nil)
	}
	if len(particles) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "select", "no particle kinds requested", nil)
	}

	specs := make([]ParticleSpec, 0, len(particles))
	for _, particle := range particles {
		spec, ok := table[particle]
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "catalog", "select",
				fmt.Sprintf("release %s has no %q data", release, particle), nil)
		}
		spec.Release = release
		spec.Particle = particle
		specs = append(specs, spec)
	}
	return specs, nil
}

// TotalSizes sums the published archive sizes across the selected specs, in
// megabytes.
func TotalSizes(specs []ParticleSpec) (compressedMB, uncompressedMB int) {
	for _, spec := range specs {
		compressedMB += spec.CompressedMB
		uncompressedMB += spec.UncompressedMB
	}
	return compressedMB, uncompressedMB
}
