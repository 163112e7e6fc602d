package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"fendlconv/internal/catalog"
	"fendlconv/internal/ledger"
	"fendlconv/internal/physics"
)

type fakeFetcher struct {
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url, destPath string) error {
	f.urls = append(f.urls, url)
	return os.WriteFile(destPath, []byte("archive"), 0o644)
}

// fakeExtractor ignores the archive contents and materializes the configured
// relative paths under the output directory.
type fakeExtractor struct {
	files    map[string]string
	archives []string
}

func (f *fakeExtractor) Extract(_ context.Context, archivePath, outputDir string) error {
	f.archives = append(f.archives, archivePath)
	for rel, content := range f.files {
		path := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeConverter struct {
	inputs  []string
	outputs []string
}

func (f *fakeConverter) ConvertACE(_ context.Context, inputPath, outputPath string, _ physics.LibVer) error {
	return f.record(inputPath, outputPath)
}

func (f *fakeConverter) ConvertENDF(_ context.Context, inputPath, outputPath string, _ physics.LibVer) error {
	return f.record(inputPath, outputPath)
}

func (f *fakeConverter) record(inputPath, outputPath string) error {
	f.inputs = append(f.inputs, inputPath)
	f.outputs = append(f.outputs, outputPath)
	return os.WriteFile(outputPath, []byte("hdf5"), 0o644)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunFromPrepopulatedStaging(t *testing.T) {
	workDir := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	staging := filepath.Join(workDir, "fendl-3.0-ace", "ace")

	writeFile(t, filepath.Join(staging, "1001.ace"), "1001.70c  0.999167  2.5301E-08 12/20/13\n")
	writeFile(t, filepath.Join(staging, "26056.ace"), "26056.70c  55.454  2.5301E-08 12/20/13\n")
	writeFile(t, filepath.Join(staging, "19K_039.ace"), "19039.70c header\n 1.0 Inf 3.0\n")

	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	converter := &fakeConverter{}
	p, err := New(Options{
		Release:     "3.0",
		Particles:   []catalog.Particle{catalog.ParticleNeutron},
		WorkDir:     workDir,
		Destination: destination,
		LibVer:      physics.LibVerEarliest,
	}, Collaborators{Converter: converter, Ledger: store})
	if err != nil {
		t.Fatal(err)
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if result.Registered != 2 {
		t.Fatalf("expected 2 registered containers, got %d", result.Registered)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "19K_039.ace") {
		t.Fatalf("warning should name the defective file: %q", result.Warnings[0])
	}
	if len(converter.inputs) != 2 {
		t.Fatalf("expected 2 conversions, got %v", converter.inputs)
	}

	for _, name := range []string{"H1", "Fe56"} {
		if _, err := os.Stat(filepath.Join(destination, "neutron", name+".h5")); err != nil {
			t.Fatalf("missing container for %s: %v", name, err)
		}
	}

	index, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`materials="H1"`, `materials="Fe56"`, filepath.Join("neutron", "H1.h5")} {
		if !strings.Contains(string(index), want) {
			t.Fatalf("index missing %q:\n%s", want, index)
		}
	}
	if strings.Contains(string(index), "K39") {
		t.Fatal("defective evaluation must not be registered")
	}

	if result.RunID == "" {
		t.Fatal("expected a run ID when a ledger is attached")
	}
	if len(result.Summaries) != 1 {
		t.Fatalf("expected one particle summary, got %v", result.Summaries)
	}
	summary := result.Summaries[0]
	if summary.Particle != "neutron" || summary.Converted != 2 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunDownloadExtractConvert(t *testing.T) {
	workDir := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")

	fetcher := &fakeFetcher{}
	extractor := &fakeExtractor{files: map[string]string{
		filepath.Join("fendl31d_ACE", "1001"):      "1001.80c  0.999167  2.5301E-08\n",
		filepath.Join("fendl31d_ACE", "1001_"):     "legacy duplicate\n",
		filepath.Join("fendl31d_ACE", "fendl.xsd"): "<schema/>\n",
	}}
	converter := &fakeConverter{}

	p, err := New(Options{
		Release:     "3.1d",
		Particles:   []catalog.Particle{catalog.ParticleNeutron},
		WorkDir:     workDir,
		Destination: destination,
		LibVer:      physics.LibVerLatest,
		Download:    true,
		Extract:     true,
		Cleanup:     true,
	}, Collaborators{Fetcher: fetcher, Extractor: extractor, Converter: converter})
	if err != nil {
		t.Fatal(err)
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	wantURL := "https://www-nds.iaea.org/fendl/data/neutron/fendl31d-neutron-ace.zip"
	if len(fetcher.urls) != 1 || fetcher.urls[0] != wantURL {
		t.Fatalf("unexpected fetches: %v", fetcher.urls)
	}
	if len(extractor.archives) != 1 {
		t.Fatalf("unexpected extractions: %v", extractor.archives)
	}

	// Compatibility duplicates and sidecar schemas never reach the converter.
	if len(converter.inputs) != 1 || filepath.Base(converter.inputs[0]) != "1001" {
		t.Fatalf("unexpected conversions: %v", converter.inputs)
	}
	if result.Registered != 1 {
		t.Fatalf("expected 1 registered container, got %d", result.Registered)
	}

	layout := Layout{WorkDir: workDir, Release: "3.1d"}
	for _, dir := range []string{layout.DownloadDir(), layout.StagingDir(catalog.FormatACE)} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("cleanup should remove %s", dir)
		}
	}
	if _, err := os.Stat(filepath.Join(destination, "neutron", "H1.h5")); err != nil {
		t.Fatal(err)
	}
}

func TestRunIsIdempotentOverUnchangedStaging(t *testing.T) {
	workDir := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	staging := filepath.Join(workDir, "fendl-3.0-ace", "ace")
	writeFile(t, filepath.Join(staging, "1001.ace"), "1001.70c  0.999167  2.5301E-08\n")
	writeFile(t, filepath.Join(staging, "2004.ace"), "2004.70c  3.968219  2.5301E-08\n")

	opts := Options{
		Release:     "3.0",
		Particles:   []catalog.Particle{catalog.ParticleNeutron},
		WorkDir:     workDir,
		Destination: destination,
		LibVer:      physics.LibVerEarliest,
	}

	var outputs [][]string
	for i := 0; i < 2; i++ {
		converter := &fakeConverter{}
		p, err := New(opts, Collaborators{Converter: converter})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		sort.Strings(converter.outputs)
		outputs = append(outputs, converter.outputs)
	}

	if len(outputs[0]) != 2 {
		t.Fatalf("expected 2 containers, got %v", outputs[0])
	}
	for i := range outputs[0] {
		if outputs[0][i] != outputs[1][i] {
			t.Fatalf("container set changed between runs: %v vs %v", outputs[0], outputs[1])
		}
	}
}

func TestCleanFileConvertsWithoutWarning(t *testing.T) {
	workDir := t.TempDir()
	staging := filepath.Join(workDir, "fendl-3.0-ace", "ace")
	// Same filename the correction table targets, but without the sentinel.
	writeFile(t, filepath.Join(staging, "19K_039.ace"), "19039.70c header\n")

	p, err := New(Options{
		Release:     "3.0",
		Particles:   []catalog.Particle{catalog.ParticleNeutron},
		WorkDir:     workDir,
		Destination: filepath.Join(t.TempDir(), "out"),
		LibVer:      physics.LibVerEarliest,
	}, Collaborators{Converter: &fakeConverter{}})
	if err != nil {
		t.Fatal(err)
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// Without the sentinel the file converts normally.
	if result.Registered != 1 || len(result.Warnings) != 0 {
		t.Fatalf("clean file should convert without warnings: %+v", result)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{Release: "3.0"}, Collaborators{}); err == nil {
		t.Fatal("expected error without a converter")
	}
	if _, err := New(Options{Release: "3.0", Download: true}, Collaborators{Converter: &fakeConverter{}}); err == nil {
		t.Fatal("expected error when downloading without a fetcher")
	}
	if _, err := New(Options{Release: "3.0", Extract: true}, Collaborators{Converter: &fakeConverter{}}); err == nil {
		t.Fatal("expected error when extracting without an extractor")
	}

	p, err := New(Options{Release: "3.1d"}, Collaborators{Converter: &fakeConverter{}})
	if err != nil {
		t.Fatal(err)
	}
	if p.opts.Destination != "fendl-3.1d-hdf5" {
		t.Fatalf("unexpected default destination: %q", p.opts.Destination)
	}
}

func TestDefaultDestination(t *testing.T) {
	if got := DefaultDestination("2.1"); got != "fendl-2.1-hdf5" {
		t.Fatalf("unexpected destination: %q", got)
	}
}
