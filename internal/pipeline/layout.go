package pipeline

import (
	"fmt"
	"path/filepath"

	"fendlconv/internal/catalog"
)

// Layout derives the conventional directory tree for one release under the
// work directory:
//
//	<lib>-<release>-download/<particle>/  archives as fetched
//	<lib>-<release>-ace/                  extracted ACE staging
//	<lib>-<release>-endf/                 extracted ENDF staging
type Layout struct {
	WorkDir string
	Release string
}

func (l Layout) dir(suffix string) string {
	return filepath.Join(l.WorkDir, fmt.Sprintf("%s-%s-%s", catalog.LibraryName, l.Release, suffix))
}

// DownloadDir is the root holding per-particle archive downloads.
func (l Layout) DownloadDir() string {
	return l.dir("download")
}

// ParticleDownloadDir holds the archives fetched for one particle kind.
func (l Layout) ParticleDownloadDir(particle catalog.Particle) string {
	return filepath.Join(l.DownloadDir(), string(particle))
}

// StagingDir is the extraction target for the given evaluation format.
func (l Layout) StagingDir(format catalog.Format) string {
	switch format {
	case catalog.FormatENDF:
		return l.dir("endf")
	default:
		return l.dir("ace")
	}
}

// DefaultDestination names the output library directory for a release.
func DefaultDestination(release string) string {
	return fmt.Sprintf("%s-%s-hdf5", catalog.LibraryName, release)
}
