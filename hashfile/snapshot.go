package hashfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"unsafe"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/kmerlsh/labelstore"
)

// Binary snapshot layout: magic and version in the clear, then an lz4 frame
// holding k, flags, the raw little-endian label arrays (count-prefixed) and a
// trailing crc32c over the raw array bytes. The snapshot is a cache artifact
// of one run for fast reload by downstream tooling, not a versioned store.
const (
	snapshotMagic   uint32 = 0x4b4c5348 // "KLSH"
	snapshotVersion uint32 = 1

	flagExtended uint32 = 1
)

var (
	// ErrSnapshotMagic is returned when the file is not a label snapshot.
	ErrSnapshotMagic = errors.New("bad snapshot magic")
	// ErrSnapshotVersion is returned for snapshots of another format version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	// ErrSnapshotChecksum is returned when the array payload is corrupt.
	ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Snapshot holds the deserialized label arrays of one run.
type Snapshot struct {
	K        int
	Extended bool
	H        []int32 // k-mers
	HM1      []int32 // (k-1)-mers, extended only
	HP1      []int32 // (k+1)-mers, extended only
}

// SaveSnapshot writes the store's label arrays as a binary snapshot.
func SaveSnapshot(w io.Writer, st *labelstore.Store) error {
	if err := binary.Write(w, binary.LittleEndian, snapshotMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, snapshotVersion); err != nil {
		return err
	}

	zw := lz4.NewWriter(w)

	var flags uint32
	if st.Extended() {
		flags |= flagExtended
	}
	if err := binary.Write(zw, binary.LittleEndian, uint32(st.K())); err != nil {
		return err
	}
	if err := binary.Write(zw, binary.LittleEndian, flags); err != nil {
		return err
	}

	crc := crc32.New(castagnoli)
	lengths := []int{st.K()}
	if st.Extended() {
		lengths = []int{st.K(), st.K() - 1, st.K() + 1}
	}
	for _, l := range lengths {
		if err := writeLabels(io.MultiWriter(zw, crc), zw, st.Array(l)); err != nil {
			return err
		}
	}

	if err := binary.Write(zw, binary.LittleEndian, crc.Sum32()); err != nil {
		return err
	}
	return zw.Close()
}

func writeLabels(payload io.Writer, meta io.Writer, labels []int32) error {
	if err := binary.Write(meta, binary.LittleEndian, uint64(len(labels))); err != nil {
		return err
	}
	// Raw slice bytes, no per-element encoding. Snapshots are native-endian
	// by construction of the build targets (little-endian everywhere we run).
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&labels[0])), len(labels)*4)
	_, err := payload.Write(raw)
	return err
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(r io.Reader) (*Snapshot, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrSnapshotMagic, magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, version)
	}

	zr := lz4.NewReader(r)

	var k, flags uint32
	if err := binary.Read(zr, binary.LittleEndian, &k); err != nil {
		return nil, err
	}
	if err := binary.Read(zr, binary.LittleEndian, &flags); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		K:        int(k),
		Extended: flags&flagExtended != 0,
	}

	crc := crc32.New(castagnoli)
	var err error
	if snap.H, err = readLabels(zr, crc); err != nil {
		return nil, err
	}
	if snap.Extended {
		if snap.HM1, err = readLabels(zr, crc); err != nil {
			return nil, err
		}
		if snap.HP1, err = readLabels(zr, crc); err != nil {
			return nil, err
		}
	}

	var sum uint32
	if err := binary.Read(zr, binary.LittleEndian, &sum); err != nil {
		return nil, err
	}
	if sum != crc.Sum32() {
		return nil, ErrSnapshotChecksum
	}

	return snap, nil
}

func readLabels(r io.Reader, crc io.Writer) ([]int32, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	labels := make([]int32, count)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&labels[0])), len(labels)*4)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	if _, err := crc.Write(raw); err != nil {
		return nil, err
	}
	return labels, nil
}
