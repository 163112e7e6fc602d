package library

import (
	"encoding/xml"
	"fmt"
	"sync"

	"fendlconv/internal/fileutil"
)

// Kind labels the incident particle a container holds data for.
type Kind string

const (
	KindNeutron Kind = "neutron"
	KindPhoton  Kind = "photon"
)

// Entry is one registered container.
type Entry struct {
	Path      string
	Materials string
	Kind      Kind
}

// Manifest collects containers in registration order. Register is safe for
// concurrent use so a parallel convert stage can share one manifest.
type Manifest struct {
	mu      sync.Mutex
	entries []Entry
	seen    map[string]struct{}
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{seen: make(map[string]struct{})}
}

// Register records a container. It returns false when the path was already
// registered in this run.
func (m *Manifest) Register(path, materials string, kind Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.seen[path]; dup {
		return false
	}
	m.seen[path] = struct{}{}
	m.entries = append(m.entries, Entry{Path: path, Materials: materials, Kind: kind})
	return true
}

// Entries returns the registered containers in insertion order.
func (m *Manifest) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len reports the number of registered containers.
func (m *Manifest) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type xmlLibrary struct {
	Materials string `xml:"materials,attr"`
	Path      string `xml:"path,attr"`
	Type      string `xml:"type,attr"`
}

type xmlIndex struct {
	XMLName   xml.Name     `xml:"cross_sections"`
	Libraries []xmlLibrary `xml:"library"`
}

// ExportXML writes the index to path via a temporary file and rename.
func (m *Manifest) ExportXML(path string) error {
	index := xmlIndex{}
	for _, entry := range m.Entries() {
		index.Libraries = append(index.Libraries, xmlLibrary{
			Materials: entry.Materials,
			Path:      entry.Path,
			Type:      string(entry.Kind),
		})
	}

	data, err := xml.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')

	if err := fileutil.WriteFileAtomic(path, payload, 0o644); err != nil {
		return fmt.Errorf("export index: %w", err)
	}
	return nil
}
