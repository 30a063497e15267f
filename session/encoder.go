package session

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	recordFormatVersionCurrent = 1

	// version byte + secret hash + created_at unix nanos
	encodedRecordSize = 1 + 32 + 8
)

// CurrentSchemaVersion is the binary layout version written by [Encode].
const CurrentSchemaVersion = recordFormatVersionCurrent

// Encode serializes r into the compact binary layout used by key-value
// backends:
//
//	[version:1][secret_hash:32][created_at_unix_nano:8 big-endian]
//
// The id is not part of the blob; it is the storage key.
func Encode(r Record) []byte {
	buf := make([]byte, encodedRecordSize)
	buf[0] = recordFormatVersionCurrent
	copy(buf[1:33], r.SecretHash[:])
	binary.BigEndian.PutUint64(buf[33:], uint64(r.CreatedAt.UnixNano()))
	return buf
}

// Decode parses a blob produced by [Encode]. The returned record has an
// empty ID; callers set it from the storage key. Every failure wraps
// [ErrCorrupt].
func Decode(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, fmt.Errorf("%w: empty blob", ErrCorrupt)
	}
	if data[0] != recordFormatVersionCurrent {
		return Record{}, fmt.Errorf("%w: unsupported session schema version %d", ErrCorrupt, data[0])
	}
	if len(data) != encodedRecordSize {
		return Record{}, fmt.Errorf("%w: blob size %d, want %d", ErrCorrupt, len(data), encodedRecordSize)
	}

	var r Record
	copy(r.SecretHash[:], data[1:33])
	r.CreatedAt = time.Unix(0, int64(binary.BigEndian.Uint64(data[33:]))).UTC()
	return r, nil
}
