package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/i474232898/hydromet/internal/hydromet"
)

// DefaultSeparator follows every cell of a flat record, the last one included.
const DefaultSeparator = ","

// FlatFile stores one day of extracted rows as "<dir>/<day>.csv".
// Cells are not quoted or escaped.
type FlatFile struct {
	Dir       string
	Separator string
}

// NewFlatFile creates a FlatFile rooted at dir.
func NewFlatFile(dir string) *FlatFile {
	return &FlatFile{Dir: dir, Separator: DefaultSeparator}
}

func (f *FlatFile) Path(day string) string {
	return filepath.Join(f.Dir, day+".csv")
}

func (f *FlatFile) Exists(day string) bool {
	_, err := os.Stat(f.Path(day))
	return err == nil
}

// Write replaces the file for day with one line per row.
func (f *FlatFile) Write(day string, rows [][]string) error {
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", f.Dir, err)
		}
	}

	path := f.Path(day)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(file)
	for _, row := range rows {
		w.WriteString(EncodeRow(row, f.separator()))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// Open returns a reader over the data lines of day's file. The header line
// is consumed here.
func (f *FlatFile) Open(day string) (hydromet.RecordReader, error) {
	path := f.Path(day)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", hydromet.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := &LineReader{file: file, scanner: bufio.NewScanner(file)}
	r.scanner.Scan()
	return r, nil
}

func (f *FlatFile) separator() string {
	if f.Separator == "" {
		return DefaultSeparator
	}
	return f.Separator
}

// EncodeRow writes every cell followed by sep.
func EncodeRow(cells []string, sep string) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c)
		b.WriteString(sep)
	}
	return b.String()
}

// LineReader walks the data lines of a flat file, skipping blank ones.
type LineReader struct {
	file    *os.File
	scanner *bufio.Scanner
	line    string
}

func (r *LineReader) Next() bool {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.line = line
		return true
	}
	return false
}

func (r *LineReader) Text() string {
	return r.line
}

func (r *LineReader) Err() error {
	return r.scanner.Err()
}

func (r *LineReader) Close() error {
	return r.file.Close()
}
