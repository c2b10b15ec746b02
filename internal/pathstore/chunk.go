package pathstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"PriceSentinel/internal/model"

	"github.com/prometheus/prometheus/tsdb/chunkenc"
)

var (
	ErrInvalidChecksum = errors.New("checksum mismatch: data is corrupted")
	ErrTooSmall        = errors.New("data too small to be a valid chunk")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Encode compresses a path into an XOR chunk (step index as timestamp) and
// frames it as [encoding byte | chunk bytes | CRC32-Castagnoli big endian].
func Encode(path model.SimulatedPath) ([]byte, error) {
	c := chunkenc.NewXORChunk()
	app, err := c.Appender()
	if err != nil {
		return nil, fmt.Errorf("chunk appender: %w", err)
	}
	for i, v := range path {
		app.Append(int64(i), v)
	}
	return wrap(c), nil
}

func wrap(c chunkenc.Chunk) []byte {
	raw := c.Bytes()
	res := make([]byte, 1+len(raw)+4)
	res[0] = byte(c.Encoding())
	copy(res[1:], raw)
	binary.BigEndian.PutUint32(res[1+len(raw):], crc32.Checksum(res[:1+len(raw)], castagnoli))
	return res
}

// Decode validates the framing produced by Encode and returns the path.
func Decode(data []byte) (model.SimulatedPath, error) {
	if len(data) < 5 {
		return nil, ErrTooSmall
	}

	payload := data[:len(data)-4]
	want := binary.BigEndian.Uint32(data[len(data)-4:])
	if crc32.Checksum(payload, castagnoli) != want {
		return nil, ErrInvalidChecksum
	}

	encoding := chunkenc.Encoding(payload[0])
	if encoding != chunkenc.EncXOR {
		return nil, fmt.Errorf("unsupported encoding type: %d", encoding)
	}

	c := chunkenc.NewXORChunk()
	c.Reset(payload[1:])

	path := make(model.SimulatedPath, 0, c.NumSamples())
	it := c.Iterator(nil)
	for it.Next() != chunkenc.ValNone {
		_, v := it.At()
		path = append(path, v)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunk: %w", err)
	}
	return path, nil
}
