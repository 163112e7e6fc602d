package endf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fendlconv/internal/logging"
	"fendlconv/internal/services"
)

// DefaultExt is the extension given to per-nuclide files cut from a stream.
const DefaultExt = ".endf"

// Splitter partitions a concatenated ENDF stream into one file per nuclide.
//
// Every record carries a sequence number in its trailing columns that is
// non-decreasing within an evaluation; a strict decrease marks the start of
// the next one. The stream's single shared header line is prepended to each
// evaluation whose sequence restarts at 1.
type Splitter struct {
	Logger *slog.Logger
	Ext    string

	// DropTrailing reproduces the legacy behavior of discarding whatever
	// remains in the buffer at end of stream instead of flushing it as the
	// final evaluation.
	DropTrailing bool
}

// Split reads the stream and writes per-nuclide files into dir, named
// <Symbol><MassNumber> plus the configured extension. It returns the created
// file names in stream order.
func (s *Splitter) Split(r io.Reader, dir string) ([]string, error) {
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, services.Wrap(services.ErrParse, "split", "read header", "", err)
		}
		return nil, services.Wrap(services.ErrParse, "split", "read header", "empty stream", nil)
	}
	header := scanner.Text()

	buffer := []string{header}
	lastSeq := 0
	lineNo := 1
	var created []string

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		seq, err := trailingSequence(line)
		if err != nil {
			return created, services.Wrap(services.ErrParse, "split",
				fmt.Sprintf("line %d", lineNo), "trailing sequence number", err)
		}

		if seq < lastSeq {
			name, err := s.finalize(buffer, header, dir, logger)
			if err != nil {
				return created, err
			}
			created = append(created, name)

			if seq == 1 {
				buffer = []string{header}
			} else {
				// The next evaluation starts mid-sequence; it has no header
				// of its own and none is synthesized.
				logger.Warn("sequence restarted above 1; evaluation begins without shared header",
					logging.Int("line", lineNo),
					logging.Int("sequence", seq),
				)
				buffer = nil
			}
		}

		buffer = append(buffer, line)
		lastSeq = seq
	}
	if err := scanner.Err(); err != nil {
		return created, services.Wrap(services.ErrParse, "split", "read stream", "", err)
	}

	if !s.DropTrailing && hasRecords(buffer, header) {
		name, err := s.finalize(buffer, header, dir, logger)
		if err != nil {
			return created, err
		}
		created = append(created, name)
	}

	return created, nil
}

func (s *Splitter) finalize(lines []string, header, dir string, logger *slog.Logger) (string, error) {
	head := ""
	switch {
	case len(lines) > 1 && lines[0] == header:
		head = lines[1]
	case len(lines) > 0 && lines[0] != header:
		head = lines[0]
	default:
		return "", services.Wrap(services.ErrParse, "split", "finalize", "evaluation has no records", nil)
	}

	nuclide, err := ParseHeadRecord(head)
	if err != nil {
		return "", services.Wrap(services.ErrParse, "split", "head record", "", err)
	}
	nuclideName, err := nuclide.Name()
	if err != nil {
		return "", services.Wrap(services.ErrParse, "split", "derive name", "", err)
	}
	name := nuclideName + s.ext()

	tmp, err := os.CreateTemp(dir, ".split-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	writer := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := writer.WriteString(line); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return "", fmt.Errorf("write evaluation: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return "", fmt.Errorf("write evaluation: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("flush evaluation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close evaluation: %w", err)
	}

	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err == nil {
		logger.Warn("nuclide file already exists; overwriting",
			logging.String("file", name),
		)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("finalize %q: %w", name, err)
	}
	return name, nil
}

func (s *Splitter) ext() string {
	if strings.TrimSpace(s.Ext) != "" {
		return s.Ext
	}
	return DefaultExt
}

func trailingSequence(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("blank record")
	}
	seq, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("non-integer %q", fields[len(fields)-1])
	}
	return seq, nil
}

func hasRecords(buffer []string, header string) bool {
	switch len(buffer) {
	case 0:
		return false
	case 1:
		return buffer[0] != header
	default:
		return true
	}
}
