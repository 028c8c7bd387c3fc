package match

import (
	"hash/crc32"
	"io"
	goSync "sync"

	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

const hashBufferSize = 4096

var hashBuffers = goSync.Pool{
	New: func() interface{} {
		buf := make([]byte, hashBufferSize)
		return &buf
	},
}

// fileLength returns the byte length of the file at path. Lengths gate the
// hash comparison so that files of different sizes are never hashed.
func fileLength(path string) (int64, error) {
	fi, err := fs.Stat(path)
	if err != nil {
		return 0, errors.WithContext(err, "stat")
	}
	return fi.Size(), nil
}

// fileChecksum returns the CRC-32 of the entire file at path, streamed in
// fixed-size buffers. The checksum is a same-content fingerprint for files
// already known to have equal lengths, not an integrity check.
func fileChecksum(path string) (uint32, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, errors.WithContext(err, "open")
	}
	defer f.Close()

	buf := hashBuffers.Get().(*[]byte)
	defer hashBuffers.Put(buf)

	sum := crc32.NewIEEE()
	if _, err := io.CopyBuffer(sum, f, *buf); err != nil {
		return 0, errors.WithContext(err, "read")
	}
	return sum.Sum32(), nil
}
