package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ChecksumFile calculates the SHA-256 checksum of a file. The checksum rides
// along with every upload so the backend can spot duplicates and the local
// history can skip files that were already sent.
func ChecksumFile(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return ChecksumReader(file)
}

// ChecksumReader calculates the SHA-256 checksum of a reader's content.
func ChecksumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
