// internal/scaffold/lengths.go
//
// Loads scaffold lengths from samtools .fai indexes or UCSC chrom.sizes
// files. Both are TSVs whose first two columns are name and length; extra
// columns are ignored.
package scaffold

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadLengths parses name/length pairs from r. name is used in error
// messages only.
func ReadLengths(r io.Reader, name string) (map[string]int, error) {
	lengths := make(map[string]int)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected at least 2 columns (name, length), got %d", name, lineNo, len(fields))
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad length %q: %v", name, lineNo, fields[1], err)
		}
		lengths[fields[0]] = n
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return lengths, nil
}

// LoadLengths reads a .fai or chrom.sizes file from disk.
func LoadLengths(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLengths(f, path)
}
