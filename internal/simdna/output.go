package simdna

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WriteSimData writes records in the simdata format: a header line,
// then one tab-separated row per sequence holding its name, content,
// and comma-joined embeddings encoded as "pos-<start>_<motif>-<subseq>".
// When includeFasta is set, the sequences are also written next to the
// simdata file with a .fa extension.
func WriteSimData(filename string, records []Record, includeFasta bool, prefix string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %v", err)
	}
	defer f.Close()

	var fasta *bufio.Writer
	if includeFasta {
		ff, err := os.Create(fastaPath(filename))
		if err != nil {
			return fmt.Errorf("failed to create fasta file: %v", err)
		}
		defer ff.Close()
		fasta = bufio.NewWriter(ff)
		defer fasta.Flush()
	}

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, "seqName\tsequence\tembeddings")
	for _, r := range records {
		name := r.Name
		if prefix != "" {
			name = prefix + "-" + name
		}

		embeddings := make([]string, len(r.Embeddings))
		for i, occ := range r.Embeddings {
			embeddings[i] = fmt.Sprintf("pos-%d_%s-%s", occ.Start, occ.Motif, occ.Seq)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, r.Seq, strings.Join(embeddings, ","))

		if fasta != nil {
			fmt.Fprintf(fasta, ">%s\n%s\n", name, r.Seq)
		}
	}

	return nil
}

// ReadSimData parses a simdata file back into records. Embedding
// positions, motif names, and realized subsequences are recovered; the
// prefix written in front of sequence names is kept as-is.
func ReadSimData(filename string) ([]Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open simdata file: %v", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if lineNumber == 1 {
			continue // header
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, fmt.Errorf("%s:%d: want at least 2 columns, got %d", filename, lineNumber, len(cols))
		}

		r := Record{Name: cols[0], Seq: cols[1]}
		if len(cols) > 2 && cols[2] != "" {
			for _, enc := range strings.Split(cols[2], ",") {
				occ, err := parseEmbedding(enc)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %v", filename, lineNumber, err)
				}
				r.Embeddings = append(r.Embeddings, occ)
			}
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan simdata file: %v", err)
	}

	return records, nil
}

// parseEmbedding decodes "pos-<start>_<motif>-<subseq>". Motif names
// may contain hyphens, so the subsequence is split off the last one.
func parseEmbedding(enc string) (Occurrence, error) {
	if !strings.HasPrefix(enc, "pos-") {
		return Occurrence{}, fmt.Errorf("bad embedding %q", enc)
	}
	rest := strings.TrimPrefix(enc, "pos-")

	sep := strings.Index(rest, "_")
	if sep < 0 {
		return Occurrence{}, fmt.Errorf("bad embedding %q", enc)
	}
	start, err := strconv.Atoi(rest[:sep])
	if err != nil {
		return Occurrence{}, fmt.Errorf("bad embedding position in %q: %v", enc, err)
	}

	what := rest[sep+1:]
	split := strings.LastIndex(what, "-")
	if split < 0 {
		return Occurrence{}, fmt.Errorf("bad embedding %q", enc)
	}

	seq := what[split+1:]
	return Occurrence{
		Motif:  what[:split],
		Start:  start,
		End:    start + len(seq),
		Strand: "+",
		Seq:    seq,
	}, nil
}

// RunInfo is the metadata written next to a simdata file so a dataset
// records exactly what was simulated.
type RunInfo struct {
	// RunID is a fresh uuid for this invocation
	RunID string `json:"runId"`

	// Command that produced the dataset: density, grammar or background
	Command string `json:"command"`

	// Time the run finished, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Seed of the run
	Seed uint64 `json:"seed"`

	// NumSeqs generated
	NumSeqs int `json:"numSeqs"`

	// SeqLength of every generated sequence
	SeqLength int `json:"seqLength"`

	// Settings echoes the mode-specific knobs
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// writeInfo writes the run metadata as JSON next to the simdata file,
// with an "_info.json" suffix.
func writeInfo(filename, command string, seed uint64, numSeqs, seqLength int, settings map[string]interface{}) error {
	t := time.Now()
	info := RunInfo{
		RunID:   uuid.NewString(),
		Command: command,
		Time: fmt.Sprintf(
			"%d/%02d/%02d %02d:%02d:%02d",
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		),
		Seed:      seed,
		NumSeqs:   numSeqs,
		SeqLength: seqLength,
		Settings:  settings,
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run info: %v", err)
	}

	if err := os.WriteFile(infoPath(filename), out, 0666); err != nil {
		return fmt.Errorf("failed to write run info: %v", err)
	}
	return nil
}

func fastaPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".fa"
}

func infoPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + "_info.json"
}
