package pure_utils

import (
	"bufio"
	"io"
)

const (
	bom0 = 0xef
	bom1 = 0xbb
	bom2 = 0xbf
)

// NewReaderWithoutBom drops a leading UTF-8 byte order mark, which spreadsheet exports often prepend.
// It reports whether a BOM was found, which also tells that the content is UTF-8.
func NewReaderWithoutBom(r io.Reader) (io.Reader, bool) {
	buf := bufio.NewReader(r)
	b, err := buf.Peek(3)
	if err != nil {
		// not enough bytes
		return buf, false
	}
	if b[0] == bom0 && b[1] == bom1 && b[2] == bom2 {
		_, _ = buf.Discard(3)
		return buf, true
	}
	return buf, false
}
