package statestore

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
)

// Stored values carry a one-byte scheme prefix. LZ4 frames additionally
// prepend the uncompressed length so decompression allocates exactly once.
const (
	schemeRaw byte = 0
	schemeLZ4 byte = 1
)

func compress(data []byte) []byte {
	bound := lz4.CompressBlockBound(len(data))
	buf := make([]byte, 1+binary.MaxVarintLen64+bound)
	buf[0] = schemeLZ4
	n := binary.PutUvarint(buf[1:], uint64(len(data)))

	written, err := lz4.CompressBlock(data, buf[1+n:], nil)
	if err != nil || written == 0 || written >= len(data) {
		// Incompressible or tiny values are stored raw.
		out := make([]byte, 1+len(data))
		out[0] = schemeRaw
		copy(out[1:], data)
		return out
	}
	return buf[:1+n+written]
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrCorrupt)
	}
	switch data[0] {
	case schemeRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])
		return out, nil
	case schemeLZ4:
		size, n := binary.Uvarint(data[1:])
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad lz4 frame header", ErrCorrupt)
		}
		out := make([]byte, size)
		written, err := lz4.UncompressBlock(data[1+n:], out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
		}
		if uint64(written) != size {
			return nil, fmt.Errorf("%w: lz4 frame size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression scheme %d", ErrCorrupt, data[0])
	}
}
