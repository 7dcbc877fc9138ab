package store

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

// magic identifies a .qs file; version is frozen at 1 per spec.md §6.
var magic = [8]byte{'S', 'Y', 'N', 'Q', 'S', 'T', 'A', 'T'}

const formatVersion uint16 = 1

// record is the decoded on-disk shape of a named state, before it is
// split into the caller-facing amplitude vector + metadata.
type record struct {
	NQubits     uint8
	CreatedAt   int64 // unix milliseconds
	Description string
	Amplitudes  qmath.Vector
}

// encodeRecord serializes r into the .qs binary layout: 8-byte magic,
// u16 version, u8 n_qubits, i64 created_at, u16 description length + UTF-8
// description, then 2^n little-endian complex128 amplitudes (two f64s
// each).
func encodeRecord(r record) []byte {
	descBytes := []byte(r.Description)
	buf := new(bytes.Buffer)
	buf.Write(magic[:])
	binary.Write(buf, binary.LittleEndian, formatVersion)
	binary.Write(buf, binary.LittleEndian, r.NQubits)
	binary.Write(buf, binary.LittleEndian, r.CreatedAt)
	binary.Write(buf, binary.LittleEndian, uint16(len(descBytes)))
	buf.Write(descBytes)
	for _, amp := range r.Amplitudes {
		binary.Write(buf, binary.LittleEndian, real(amp))
		binary.Write(buf, binary.LittleEndian, imag(amp))
	}
	return buf.Bytes()
}

// decodeRecord parses the .qs binary layout, failing with a Corrupt
// tagged error on any magic/version/size mismatch.
func decodeRecord(data []byte) (record, error) {
	r := bytes.NewReader(data)

	var gotMagic [8]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil || gotMagic != magic {
		return record{}, qerr.New(qerr.Corrupt, "store: bad magic in state file")
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil || version != formatVersion {
		return record{}, qerr.New(qerr.Corrupt, "store: unsupported format version")
	}

	var nQubits uint8
	if err := binary.Read(r, binary.LittleEndian, &nQubits); err != nil {
		return record{}, qerr.New(qerr.Corrupt, "store: truncated header (n_qubits)")
	}

	var createdAt int64
	if err := binary.Read(r, binary.LittleEndian, &createdAt); err != nil {
		return record{}, qerr.New(qerr.Corrupt, "store: truncated header (created_at)")
	}

	var descLen uint16
	if err := binary.Read(r, binary.LittleEndian, &descLen); err != nil {
		return record{}, qerr.New(qerr.Corrupt, "store: truncated header (description_len)")
	}
	descBuf := make([]byte, descLen)
	if _, err := io.ReadFull(r, descBuf); err != nil {
		return record{}, qerr.New(qerr.Corrupt, "store: truncated description")
	}

	dim := 1 << uint(nQubits)
	amps := make(qmath.Vector, dim)
	for i := 0; i < dim; i++ {
		var re, im float64
		if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
			return record{}, qerr.New(qerr.Corrupt, "store: truncated amplitude data at index %d", i)
		}
		if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
			return record{}, qerr.New(qerr.Corrupt, "store: truncated amplitude data at index %d", i)
		}
		amps[i] = complex(re, im)
	}

	if r.Len() != 0 {
		return record{}, qerr.New(qerr.Corrupt, "store: trailing bytes after amplitude data")
	}

	return record{NQubits: nQubits, CreatedAt: createdAt, Description: string(descBuf), Amplitudes: amps}, nil
}

// encodedSize returns the exact byte size encodeRecord would produce for
// a state of nQubits qubits with the given description, without building
// it — used to enforce the store's byte budget before writing.
func encodedSize(nQubits int, description string) int64 {
	const headerSize = 8 + 2 + 1 + 8 + 2 // magic+version+n_qubits+created_at+desc_len
	dim := int64(1) << uint(nQubits)
	return int64(headerSize) + int64(len(description)) + dim*16
}
