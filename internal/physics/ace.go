package physics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fendlconv/internal/endf"
	"fendlconv/internal/services"
)

// IdentifyACE reads the table identifier from an ACE file header and returns
// the target nuclide. The identifier is the first field of the first line,
// ZAID.XXc in the classic header; the 2.0 header carries a version token
// first and the SZAX identifier second.
func IdentifyACE(path string) (endf.Nuclide, error) {
	file, err := os.Open(path)
	if err != nil {
		return endf.Nuclide{}, fmt.Errorf("open ace file: %w", err)
	}
	defer file.Close()
	return identifyACE(file, path)
}

func identifyACE(r io.Reader, path string) (endf.Nuclide, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return endf.Nuclide{}, services.Wrap(services.ErrParse, "identify", "read ace header", path, err)
		}
		return endf.Nuclide{}, services.Wrap(services.ErrParse, "identify", "read ace header",
			fmt.Sprintf("%s: empty file", path), nil)
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return endf.Nuclide{}, services.Wrap(services.ErrParse, "identify", "ace header",
			fmt.Sprintf("%s: blank header line", path), nil)
	}

	candidates := fields[:1]
	if strings.HasPrefix(fields[0], "2.") && len(fields) > 1 {
		candidates = fields[1:2]
	}
	for _, candidate := range candidates {
		za, err := parseZAID(candidate)
		if err != nil {
			continue
		}
		nuclide := endf.Nuclide{Z: za / 1000, A: za % 1000}
		if _, err := nuclide.Name(); err != nil {
			continue
		}
		return nuclide, nil
	}
	return endf.Nuclide{}, services.Wrap(services.ErrParse, "identify", "ace header",
		fmt.Sprintf("%s: no table identifier in %q", path, scanner.Text()), nil)
}

func parseZAID(token string) (int, error) {
	id := token
	if dot := strings.IndexByte(id, '.'); dot >= 0 {
		id = id[:dot]
	}
	za, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("identifier %q: %w", token, err)
	}
	if za <= 0 {
		return 0, fmt.Errorf("identifier %q is not a nuclide", token)
	}
	return za, nil
}

// IdentifyENDF returns the target nuclide of an ENDF evaluation file.
func IdentifyENDF(path string) (endf.Nuclide, error) {
	file, err := os.Open(path)
	if err != nil {
		return endf.Nuclide{}, fmt.Errorf("open endf file: %w", err)
	}
	defer file.Close()

	nuclide, err := endf.Identify(file)
	if err != nil {
		return endf.Nuclide{}, services.Wrap(services.ErrParse, "identify", "endf head record", path, err)
	}
	return nuclide, nil
}
