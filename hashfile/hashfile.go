// Package hashfile serializes a finished labeling.
//
// The text format has one line per vertex that was ever reached: the decoded
// sequence followed by its label (-1 for gray, >= 0 for a center index).
// Vertices never touched by any island are omitted. The extended variant
// partitions the file into three sections introduced by the literal markers
// "k-mers", "(k-1)-mers" and "(k+1)-mers".
//
// Paths ending in .zst are transparently zstd-compressed.
package hashfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/kmerlsh/kmer"
	"github.com/hupe1980/kmerlsh/labelstore"
)

// Section markers of the extended format.
const (
	SectionK   = "k-mers"
	SectionKM1 = "(k-1)-mers"
	SectionKP1 = "(k+1)-mers"
)

// ErrBadLine reports an unparseable label file line.
type ErrBadLine struct {
	Line int
	Text string
}

func (e *ErrBadLine) Error() string {
	return fmt.Sprintf("label file line %d: %q", e.Line, e.Text)
}

// Write streams the labeling to w.
func Write(w io.Writer, st *labelstore.Store) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	k := st.K()

	if !st.Extended() {
		writeArray(bw, st.Array(k), k)
		return bw.Flush()
	}

	fmt.Fprintln(bw, SectionK)
	writeArray(bw, st.Array(k), k)
	fmt.Fprintln(bw, SectionKM1)
	writeArray(bw, st.Array(k-1), k-1)
	fmt.Fprintln(bw, SectionKP1)
	writeArray(bw, st.Array(k+1), k+1)
	return bw.Flush()
}

func writeArray(w *bufio.Writer, labels []int32, l int) {
	for code, label := range labels {
		if label > labelstore.Unassigned {
			fmt.Fprintf(w, "%s %d\n", kmer.Decode(uint64(code), l), label)
		}
	}
}

// WriteFile writes the labeling to path, zstd-compressed when the path ends
// in .zst.
func WriteFile(path string, st *labelstore.Store) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return err
		}
		if err := Write(zw, st); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}

	return Write(f, st)
}

// ReadKMers parses the k-mer section back into a flat label array of 4^k
// cells initialized to Unassigned. Sections of other lengths are skipped; the
// reader accepts both the plain and the extended format.
func ReadKMers(r io.Reader, k int) ([]int32, error) {
	h := make([]int32, 1<<uint(2*k))
	for i := range h {
		h[i] = labelstore.Unassigned
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	inK := true

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		switch text {
		case SectionK:
			inK = true
			continue
		case SectionKM1, SectionKP1:
			inK = false
			continue
		}
		if !inK {
			continue
		}

		seq, labelText, ok := strings.Cut(text, " ")
		if !ok || len(seq) != k {
			return nil, &ErrBadLine{Line: line, Text: text}
		}
		code, err := kmer.Encode(seq)
		if err != nil {
			return nil, fmt.Errorf("label file line %d: %w", line, err)
		}
		label, err := strconv.Atoi(labelText)
		if err != nil {
			return nil, &ErrBadLine{Line: line, Text: text}
		}
		h[code] = int32(label)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return h, nil
}

// ReadKMersFile reads the k-mer labels from path, decompressing .zst files.
func ReadKMersFile(path string, k int) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}

	h, err := ReadKMers(r, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}
