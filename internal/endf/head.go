package endf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseHeadRecord extracts the target nuclide from an evaluation head record.
// The ZA identifier (Z*1000 + A) occupies the first 11-column field.
func ParseHeadRecord(line string) (Nuclide, error) {
	field := line
	if len(field) > 11 {
		field = field[:11]
	}
	za, err := parseFloatField(field)
	if err != nil {
		return Nuclide{}, fmt.Errorf("head record ZA field %q: %w", strings.TrimSpace(field), err)
	}
	rounded := int(math.Round(za))
	if rounded <= 0 {
		return Nuclide{}, fmt.Errorf("head record ZA %d is not a nuclide identifier", rounded)
	}
	nuclide := Nuclide{Z: rounded / 1000, A: rounded % 1000}
	if _, err := Symbol(nuclide.Z); err != nil {
		return Nuclide{}, err
	}
	return nuclide, nil
}

// Identify reads an evaluation and returns its target nuclide. The first line
// is the TPID header; the head record follows. Evaluations cut from the
// middle of a stream may lack the header, in which case the first line is the
// head record itself.
func Identify(r io.Reader) (Nuclide, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Nuclide{}, err
		}
		return Nuclide{}, fmt.Errorf("empty evaluation")
	}
	first := scanner.Text()

	if scanner.Scan() {
		if nuclide, err := ParseHeadRecord(scanner.Text()); err == nil {
			return nuclide, nil
		}
	} else if err := scanner.Err(); err != nil {
		return Nuclide{}, err
	}

	return ParseHeadRecord(first)
}

// parseFloatField parses an ENDF numeric field. The format omits the exponent
// letter, e.g. 1.903900+4 means 1.9039e4.
func parseFloatField(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		prev := s[i-1]
		if prev == 'e' || prev == 'E' {
			break
		}
		if v, err := strconv.ParseFloat(s[:i]+"e"+s[i:], 64); err == nil {
			return v, nil
		}
		break
	}
	return 0, fmt.Errorf("malformed numeric field %q", s)
}
