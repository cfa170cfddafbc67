// Package hashutil computes the content fingerprints used for ROM
// deduplication and exact catalog matching.
package hashutil

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// Provider produces the CRC32 and MD5 fingerprints of a file. It exists so
// tests and alternative hash backends can substitute the implementation.
type Provider func(path string) (crc32Hex, md5Hex string, err error)

// HashFile reads path once and returns its CRC32 (IEEE) and MD5 digests as
// lowercase hex strings.
func HashFile(path string) (string, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	crc := crc32.NewIEEE()
	sum := md5.New()
	if _, err := io.Copy(io.MultiWriter(crc, sum), file); err != nil {
		return "", "", fmt.Errorf("hash %q: %w", path, err)
	}

	crcHex := fmt.Sprintf("%08x", crc.Sum32())
	return crcHex, hex.EncodeToString(sum.Sum(nil)), nil
}
