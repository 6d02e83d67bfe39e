package sheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/pure_utils"
)

const (
	// EncodingAuto reads UTF-8 when the content is valid UTF-8, Windows-1252 otherwise.
	EncodingAuto        = ""
	EncodingUtf8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingLatin9      = "iso-8859-15"
	EncodingWindows1252 = "windows-1252"
)

// delimiter sniffing only looks at the beginning of the file
const (
	delimiterSniffLength = 4096
	delimiterSniffLines  = 10
)

// in order of preference when they are equally frequent
var delimiterCandidates = []rune{';', '\t', ','}

func textEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EncodingUtf8, "utf8":
		return unicode.UTF8, nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case EncodingLatin9, "latin9", "iso8859-15":
		return charmap.ISO8859_15, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, errors.Wrapf(models.ErrUnknownEncoding, "encoding '%s'", name)
}

// DecodeRows reads a spreadsheet CSV export into rows of text cells. Lines whose cells are all blank
// are dropped. The delimiter is sniffed from the first lines, ';' (french Excel exports) winning ties.
func DecodeRows(r io.Reader, encodingName string) ([]models.RawRow, error) {
	reader, hasBom := pure_utils.NewReaderWithoutBom(r)
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "error reading csv content")
	}

	if hasBom || (encodingName == EncodingAuto && utf8.Valid(content)) {
		encodingName = EncodingUtf8
	} else if encodingName == EncodingAuto {
		encodingName = EncodingWindows1252
	}
	enc, err := textEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding csv content as %s", encodingName)
	}

	csvReader := csv.NewReader(bytes.NewReader(decoded))
	csvReader.Comma = sniffDelimiter(decoded)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	rows := make([]models.RawRow, 0)
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(models.BadParameterError, err.Error())
		}
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, models.RawRow(record))
	}
	return rows, nil
}

// sniffDelimiter picks the candidate found outside quotes on the most of the first lines, then the one
// found most often. Ties go to ';', then tab, then ','.
func sniffDelimiter(content []byte) rune {
	sample := content
	if len(sample) > delimiterSniffLength {
		sample = sample[:delimiterSniffLength]
	}

	lines := make(map[rune]int, len(delimiterCandidates))
	occurrences := make(map[rune]int, len(delimiterCandidates))
	for _, counts := range unquotedCountsPerLine(sample) {
		for delimiter, count := range counts {
			lines[delimiter]++
			occurrences[delimiter] += count
		}
	}

	best := delimiterCandidates[0]
	for _, candidate := range delimiterCandidates[1:] {
		if lines[candidate] > lines[best] ||
			(lines[candidate] == lines[best] && occurrences[candidate] > occurrences[best]) {
			best = candidate
		}
	}
	return best
}

// unquotedCountsPerLine counts the delimiter candidates outside quoted fields, for each of the first
// non blank lines of the sample. A quoted field may span several lines.
func unquotedCountsPerLine(sample []byte) []map[rune]int {
	result := make([]map[rune]int, 0, delimiterSniffLines)
	current := make(map[rune]int)
	blank := true
	inQuotes := false
	for _, r := range string(sample) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			blank = false
		case inQuotes:
		case r == '\n':
			if !blank || len(current) > 0 {
				result = append(result, current)
				if len(result) == delimiterSniffLines {
					return result
				}
			}
			current = make(map[rune]int)
			blank = true
		case slices.Contains(delimiterCandidates, r):
			current[r]++
		case r != ' ' && r != '\r':
			blank = false
		}
	}
	if !blank || len(current) > 0 {
		result = append(result, current)
	}
	return result
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if pure_utils.CleanCell(cell) != "" {
			return false
		}
	}
	return true
}
