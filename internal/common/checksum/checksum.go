// Package checksum computes the xxh3 digests recorded for data files.
package checksum

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// Bytes returns the hex-encoded xxh3-64 digest of data.
func Bytes(data []byte) string {
	return encode(xxh3.Hash(data))
}

// File streams the file at path through xxh3-64 and returns the hex digest.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return encode(h.Sum64()), nil
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
