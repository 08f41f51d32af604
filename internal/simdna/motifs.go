package simdna

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MotifLibrary resolves motif names to their PWMs. It is read-only
// after loading and safe for concurrent reads.
type MotifLibrary struct {
	// path of the motif file the library was loaded from
	path string

	// pwms maps motif name to its finalized PWM
	pwms map[string]*PWM

	// names in file order, for listing
	names []string
}

// PWM returns the motif with the given name or an UnknownMotifError.
func (l *MotifLibrary) PWM(name string) (*PWM, error) {
	p, ok := l.pwms[name]
	if !ok {
		return nil, &UnknownMotifError{Name: name, Path: l.path}
	}
	return p, nil
}

// Names lists the loaded motif names in file order.
func (l *MotifLibrary) Names() []string {
	return l.names
}

// LoadEncodeMotifs reads a motif file in the ENCODE motifs format:
// declarations start with ">", the first token after ">" is the motif
// name, and each following line is
// "<letter> <probA> <probC> <probG> <probT>".
func LoadEncodeMotifs(path string, pseudocount float64) (*MotifLibrary, error) {
	return loadMotifs(path, pseudocount, func(fields []string) string {
		return fields[0]
	})
}

// LoadHomerMotifs reads a motif file in the Homer format, where the
// header's second token is the motif name and rows hold only the four
// probabilities.
func LoadHomerMotifs(path string, pseudocount float64) (*MotifLibrary, error) {
	return loadMotifs(path, pseudocount, func(fields []string) string {
		if len(fields) > 1 {
			return fields[1]
		}
		return fields[0]
	})
}

// loadMotifs scans a ">"-delimited motif file, using headerName to pull
// the motif name out of a header's whitespace-split fields. Probability
// rows with five fields are assumed to lead with a summary letter.
func loadMotifs(
	path string,
	pseudocount float64,
	headerName func(fields []string) string,
) (*MotifLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read motif file: %v", err)
	}
	defer f.Close()

	lib := &MotifLibrary{
		path: path,
		pwms: make(map[string]*PWM),
	}

	var name string
	var rows [][]float64
	finish := func() error {
		if name == "" {
			return nil
		}
		p, err := NewPWM(name, rows, pseudocount)
		if err != nil {
			return err
		}
		lib.pwms[name] = p
		lib.names = append(lib.names, name)
		return nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			if err := finish(); err != nil {
				return nil, err
			}
			fields := strings.Fields(strings.TrimPrefix(line, ">"))
			if len(fields) == 0 {
				return nil, fmt.Errorf("%s: motif header without a name", path)
			}
			name = headerName(fields)
			rows = nil
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("%s: probability row before any motif header", path)
		}

		fields := strings.Fields(line)
		if len(fields) == 5 {
			fields = fields[1:] // drop the summary letter
		}
		row := make([]float64, 0, 4)
		for _, field := range fields {
			w, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: motif %q: bad probability %q: %v", path, name, field, err)
			}
			row = append(row, w)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan motif file: %v", err)
	}
	if err := finish(); err != nil {
		return nil, err
	}

	if len(lib.names) == 0 {
		return nil, fmt.Errorf("%s: no motifs found", path)
	}

	return lib, nil
}
