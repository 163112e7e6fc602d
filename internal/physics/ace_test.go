package physics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fendlconv/internal/services"
)

func writeACE(t *testing.T, name, header string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(header+"\n 0.0 0.0 0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIdentifyACEClassicHeader(t *testing.T) {
	path := writeACE(t, "19K_039.ace", " 19039.03c   38.662400  2.5301E-08 12/01/05")
	nuclide, err := IdentifyACE(path)
	if err != nil {
		t.Fatal(err)
	}
	if nuclide.Z != 19 || nuclide.A != 39 {
		t.Fatalf("got Z=%d A=%d, want K-39", nuclide.Z, nuclide.A)
	}
	name, _ := nuclide.Name()
	if name != "K39" {
		t.Fatalf("name = %q, want K39", name)
	}
}

func TestIdentifyACENaturalElement(t *testing.T) {
	path := writeACE(t, "Mg000mc.ace", " 12000.03c   24.096300  2.5301E-08")
	nuclide, err := IdentifyACE(path)
	if err != nil {
		t.Fatal(err)
	}
	name, _ := nuclide.Name()
	if name != "Mg0" {
		t.Fatalf("name = %q, want Mg0", name)
	}
}

func TestIdentifyACEVersionTwoHeader(t *testing.T) {
	path := writeACE(t, "1001.ace", "2.0.1  1001.800nc  ENDF/B-VIII.0")
	nuclide, err := IdentifyACE(path)
	if err != nil {
		t.Fatal(err)
	}
	if nuclide.Z != 1 || nuclide.A != 1 {
		t.Fatalf("got Z=%d A=%d, want H-1", nuclide.Z, nuclide.A)
	}
}

func TestIdentifyACEMalformedHeader(t *testing.T) {
	path := writeACE(t, "junk.ace", "this is not an ace table")
	if _, err := IdentifyACE(path); !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestIdentifyENDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "K39.endf")
	content := "header line\n 1.903900+4 3.866701+1          1          0          0          12531 1451    1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	nuclide, err := IdentifyENDF(path)
	if err != nil {
		t.Fatal(err)
	}
	if nuclide.Z != 19 || nuclide.A != 39 {
		t.Fatalf("got Z=%d A=%d, want K-39", nuclide.Z, nuclide.A)
	}
}

func TestLibVerValid(t *testing.T) {
	if !LibVerEarliest.Valid() || !LibVerLatest.Valid() {
		t.Fatal("supported policies must validate")
	}
	if LibVer("newest").Valid() {
		t.Fatal("unknown policy must not validate")
	}
}
