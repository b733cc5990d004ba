// core/gff3/reader.go
package gff3

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Attrs holds one row's attribute column with lowercased keys.
type Attrs map[string]string

// Get looks an attribute up case-insensitively.
func (a Attrs) Get(key string) string { return a[strings.ToLower(key)] }

// ParseAttrs splits a GFF3 attribute column. Both "key=value" and
// "key value" forms are accepted; bare tokens map to "".
func ParseAttrs(s string) Attrs {
	attrs := make(Attrs)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var key, value string
		if i := strings.Index(part, "="); i >= 0 {
			key, value = part[:i], part[i+1:]
		} else if i := strings.Index(part, " "); i >= 0 {
			key, value = part[:i], part[i+1:]
		} else {
			key = part
		}
		attrs[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return attrs
}

// Row is one 9-column GFF3 line.
type Row struct {
	SeqID  string
	Source string
	Type   string
	Start  int
	End    int
	Score  string
	Strand string
	Phase  string
	Attrs  Attrs
}

func parseRow(line string) (Row, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(parts) != 9 {
		return Row{}, fmt.Errorf("expected 9 columns, got %d", len(parts))
	}
	start, err := strconv.Atoi(parts[3])
	if err != nil {
		return Row{}, fmt.Errorf("bad start %q", parts[3])
	}
	end, err := strconv.Atoi(parts[4])
	if err != nil {
		return Row{}, fmt.Errorf("bad end %q", parts[4])
	}
	return Row{
		SeqID:  parts[0],
		Source: parts[1],
		Type:   parts[2],
		Start:  start,
		End:    end,
		Score:  parts[5],
		Strand: parts[6],
		Phase:  parts[7],
		Attrs:  ParseAttrs(parts[8]),
	}, nil
}

// Document is a parsed EDTA intact GFF3: repeat_region rows in input order
// plus their child rows, attached via the Parent attribute.
type Document struct {
	order    []string
	regions  map[string]Row
	children map[string][]Row
}

// Read parses GFF3 from r. name is used in error messages ("name:line").
// Comment lines and rows that are neither repeat_region parents nor
// Parent-bearing children are skipped.
func Read(r io.Reader, name string) (*Document, error) {
	doc := &Document{
		regions:  make(map[string]Row),
		children: make(map[string][]Row),
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %v", name, ln, err)
		}
		rid := row.Attrs.Get("id")
		if row.Type == "repeat_region" && rid != "" {
			if _, dup := doc.regions[rid]; !dup {
				doc.order = append(doc.order, rid)
			}
			doc.regions[rid] = row
			continue
		}
		parents := row.Attrs.Get("parent")
		if parents == "" {
			continue
		}
		for _, parent := range strings.Split(parents, ",") {
			parent = strings.TrimSpace(parent)
			if parent != "" {
				doc.children[parent] = append(doc.children[parent], row)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return doc, nil
}

// Load reads a GFF3 file from disk.
func Load(path string) (*Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	return Read(fh, path)
}

// Len is the number of repeat_region parents seen.
func (d *Document) Len() int { return len(d.order) }
