// Package centers parses the seed list that a partition run grows islands
// from.
//
// Two file flavors are accepted, both starting with a count header line:
//
//	3            3
//	ACGT         ACGT 0
//	AAAA         TCGT 0
//	TTTT         AAAA 1
//	             TTTT 2
//
// The left flavor has exactly count single-center records. The right flavor
// groups k-mers into cliques by a trailing clique id in [0, count); all
// members of a clique seed one island and share one label.
//
// A malformed header or record aborts parsing: silently skipping a bad center
// would break the sensitivity guarantees of the resulting labeling.
package centers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/kmerlsh/kmer"
)

// ErrBadHeader is returned when the leading count line is missing or not a
// positive integer.
var ErrBadHeader = errors.New("malformed center count header")

// ErrRecord wraps a malformed center record with its line number.
type ErrRecord struct {
	Line  int
	cause error
}

func (e *ErrRecord) Error() string {
	return fmt.Sprintf("center record on line %d: %v", e.Line, e.cause)
}

func (e *ErrRecord) Unwrap() error { return e.cause }

// Clique is one seed record: a single center or a set of mutually close
// k-mers treated as one unit. The island index of a clique is its position in
// the parsed slice.
type Clique struct {
	Members []uint64
}

// ReadFile reads a center or clique file.
func ReadFile(path string, k int) ([]Clique, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cliques, err := Read(f, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cliques, nil
}

// Read parses a center or clique list from r. Every member must have length
// exactly k over the {A, C, G, T} alphabet.
func Read(r io.Reader, k int) ([]Clique, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrBadHeader
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || count < 1 {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, strings.TrimSpace(sc.Text()))
	}

	cliques := make([]Clique, count)
	line := 1
	records := 0
	cliqued := false

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)

		switch len(fields) {
		case 1:
			if cliqued {
				return nil, &ErrRecord{Line: line, cause: errors.New("missing clique id")}
			}
			if records >= count {
				return nil, &ErrRecord{Line: line, cause: fmt.Errorf("more than %d centers", count)}
			}
			code, err := encodeMember(fields[0], k)
			if err != nil {
				return nil, &ErrRecord{Line: line, cause: err}
			}
			cliques[records].Members = []uint64{code}
			records++

		case 2:
			if records > 0 && !cliqued {
				return nil, &ErrRecord{Line: line, cause: errors.New("unexpected clique id in plain center list")}
			}
			cliqued = true
			id, err := strconv.Atoi(fields[1])
			if err != nil || id < 0 || id >= count {
				return nil, &ErrRecord{Line: line, cause: fmt.Errorf("clique id %q not in [0,%d)", fields[1], count)}
			}
			code, err := encodeMember(fields[0], k)
			if err != nil {
				return nil, &ErrRecord{Line: line, cause: err}
			}
			cliques[id].Members = append(cliques[id].Members, code)
			if len(cliques[id].Members) == 1 {
				records++
			}

		default:
			return nil, &ErrRecord{Line: line, cause: fmt.Errorf("expected %q or %q, got %d fields", "SEQ", "SEQ ID", len(fields))}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if records != count {
		return nil, fmt.Errorf("%w: header says %d centers, found %d", ErrBadHeader, count, records)
	}

	return cliques, nil
}

func encodeMember(seq string, k int) (uint64, error) {
	if len(seq) != k {
		return 0, fmt.Errorf("length %d, want %d", len(seq), k)
	}
	return kmer.Encode(seq)
}

// Write serializes cliques in a form Read accepts: the plain flavor when every
// clique has a single member, the clique flavor otherwise.
func Write(w io.Writer, cliques []Clique, k int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(cliques))

	plain := true
	for _, c := range cliques {
		if len(c.Members) != 1 {
			plain = false
			break
		}
	}

	for id, c := range cliques {
		for _, code := range c.Members {
			if plain {
				fmt.Fprintf(bw, "%s\n", kmer.Decode(code, k))
			} else {
				fmt.Fprintf(bw, "%s %d\n", kmer.Decode(code, k), id)
			}
		}
	}
	return bw.Flush()
}
