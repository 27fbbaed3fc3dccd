// Package ingest loads CSV files into the columnar shape the relation
// package needs, choosing between a whole-file read and a memory-mapped
// read based on file size.
package ingest

import (
	"fmt"
	"os"
	"strings"

	afdio "github.com/relmetrics/afdmetric/internal/io"
	"github.com/relmetrics/afdmetric/internal/parser"
)

// mmapThreshold is the file size at or above which LoadCSV prefers a
// memory-mapped read over os.ReadFile, avoiding a second full-size heap
// allocation for large inputs.
const mmapThreshold = 64 * 1024 * 1024

// Table is the column-major view LoadCSV produces: Columns[c][r] is the
// cell at column c, row r, ready to hand to relation.New.
type Table struct {
	Headers []string
	Columns [][]string
}

// LoadCSV reads path in full and parses it into a Table. The parser
// requires the complete file contiguous in memory to correctly handle
// quoted fields that span what would otherwise be chunk boundaries, so
// both the whole-file and memory-mapped paths below end up materializing
// one contiguous byte slice before parsing begins; AFD metric
// calculation needs every row in memory for PLI construction regardless,
// so nothing is lost by not streaming rows one at a time.
func LoadCSV(path string) (*Table, error) {
	data, fromMmap, closeSource, err := readSource(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer closeSource()

	if len(data) == 0 {
		return nil, fmt.Errorf("ingest: %s is empty", path)
	}
	if !parser.ValidateUTF8(data) {
		return nil, fmt.Errorf("ingest: %s is not valid UTF-8", path)
	}

	p := parser.NewCSVParser(parser.DefaultParserConfig())
	if err := p.Parse(data); err != nil {
		return nil, fmt.Errorf("ingest: parsing %s: %w", path, err)
	}

	headers := cloneFields(p.Headers(), fromMmap)
	numCols := len(headers)
	if numCols == 0 {
		return nil, fmt.Errorf("ingest: %s has no header row", path)
	}

	columns := make([][]string, numCols)
	for c := range columns {
		columns[c] = make([]string, 0, 1024)
	}

	for {
		record, err := p.NextRecord()
		if err != nil {
			return nil, fmt.Errorf("ingest: parsing %s at line %d: %w", path, p.LineNum(), err)
		}
		if record == nil {
			break
		}
		if len(record) != numCols {
			return nil, fmt.Errorf("ingest: %s line %d has %d fields, expected %d", path, p.LineNum(), len(record), numCols)
		}
		for c, v := range record {
			if fromMmap {
				v = strings.Clone(v)
			}
			columns[c] = append(columns[c], v)
		}
	}

	return &Table{Headers: headers, Columns: columns}, nil
}

// cloneFields copies each field when the backing buffer is memory-mapped
// (see readSource): the parser's zero-allocation field extraction aliases
// its input buffer via unsafe.Pointer, and that buffer is unmapped by
// closeSource once LoadCSV returns.
func cloneFields(fields []string, fromMmap bool) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if fromMmap {
			out[i] = strings.Clone(f)
		} else {
			out[i] = f
		}
	}
	return out
}

// readSource picks a whole-file read for small inputs and a
// memory-mapped read for large ones, returning the contiguous byte slice
// to parse, whether it came from a mapping, and a closer to release any
// OS resources once parsing (and field cloning) is done.
func readSource(path string) (data []byte, fromMmap bool, closeSource func(), err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.Size() < mmapThreshold {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, false, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, false, func() {}, nil
	}

	// ChunkSize is set to the whole file size so a single ReadChunk call
	// below returns the complete mapped region: the parser needs one
	// contiguous buffer, not a chunked stream, since a quoted field may
	// otherwise straddle a chunk boundary.
	reader, err := afdio.NewMMapReader(path, afdio.MMapConfig{
		ChunkSize:    info.Size(),
		MaxMapSize:   info.Size(), // always allow mapping the whole file we chose to map
		UseMmap:      true,
		FallbackSize: afdio.DefaultMMapConfig().FallbackSize,
	})
	if err != nil {
		return nil, false, nil, fmt.Errorf("memory-mapping %s: %w", path, err)
	}

	if !reader.IsMapped() {
		// mmapFile failed internally and NewMMapReader fell back after
		// printing a warning;
		// read the whole file through the reader's regular-I/O path instead
		// of returning a half-initialized mapping.
		buf := make([]byte, reader.Size())
		n := 0
		for {
			chunk, err := reader.ReadChunk()
			if err != nil {
				reader.Close()
				return nil, false, nil, fmt.Errorf("reading %s: %w", path, err)
			}
			if chunk == nil {
				break
			}
			n += copy(buf[n:], chunk)
		}
		reader.Close()
		return buf[:n], false, func() {}, nil
	}

	chunk, err := reader.ReadChunk()
	if err != nil {
		reader.Close()
		return nil, false, nil, fmt.Errorf("reading mapped %s: %w", path, err)
	}
	return chunk, true, func() { reader.Close() }, nil
}
