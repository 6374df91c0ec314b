package byteio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ScopedTempSource is a FileSource created under the system temp directory
// with a random 16-character alphanumeric name. It is unlinked when closed,
// so the backing file never survives the owning engine.
type ScopedTempSource struct {
	*FileSource
	path string
}

// NewScopedTempSource creates a scratch file under os.TempDir() named
// "<16 random alphanumeric characters><suffix>", opened read-write.
func NewScopedTempSource(suffix string) (*ScopedTempSource, error) {
	name := randomName16() + suffix
	path := filepath.Join(os.TempDir(), name)

	fh, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, errors.Wrapf(err, "byteio: create scratch file %q", path)
	}

	return &ScopedTempSource{FileSource: &FileSource{fh: fh}, path: path}, nil
}

// Path reports the scratch file's location on disk.
func (s *ScopedTempSource) Path() string { return s.path }

// Close flushes and unlinks the scratch file. Close is idempotent-safe to
// call once; on platforms without atomic create-and-unlink the removal is
// done explicitly here rather than relied upon at create time.
func (s *ScopedTempSource) Close() error {
	closeErr := s.FileSource.Close()
	removeErr := os.Remove(s.path)
	if closeErr != nil {
		return errors.Wrap(closeErr, "byteio: close scratch file")
	}
	if removeErr != nil && !os.IsNotExist(removeErr) {
		return errors.Wrap(removeErr, "byteio: remove scratch file")
	}
	return nil
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomName16 derives a 16-character alphanumeric name from a fresh UUID's
// entropy rather than hand-rolling a PRNG loop.
func randomName16() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	out := make([]byte, 16)
	for i := 0; i < 16; i++ {
		// raw is 32 hex characters; fold pairs down into the full
		// alphanumeric alphabet so the name isn't hex-only.
		hi := hexNibble(raw[(i*2)%len(raw)])
		lo := hexNibble(raw[(i*2+1)%len(raw)])
		out[i] = alphanumeric[(hi<<4|lo)%byte(len(alphanumeric))]
	}
	return string(out)
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return 0
	}
}
