// Package hostlist reads candidate time servers from a text file:
// one host per line, blank lines and '#' comments ignored.
package hostlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

const maxLine = 4096

type Iterator interface {
	Next() ([]byte, error)
}

type scannerIterator struct {
	scanner *bufio.Scanner
}

func NewWithScanner(r io.Reader) Iterator {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), maxLine)
	return &scannerIterator{scanner: scanner}
}

// Next returns nil, nil at the end of input.
func (s *scannerIterator) Next() ([]byte, error) {
	if s.scanner.Scan() {
		return s.scanner.Bytes(), nil
	}
	return nil, s.scanner.Err()
}

func Read(r io.Reader) ([]string, error) {
	var hosts []string
	iter := NewWithScanner(r)
	for lineno := 1; ; lineno++ {
		line, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if line == nil {
			break
		}
		if idx := bytes.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if bytes.ContainsAny(line, " \t") {
			return nil, fmt.Errorf("line %d: unexpected whitespace in host %q", lineno, line)
		}
		hosts = append(hosts, string(line))
	}
	return hosts, nil
}

func Load(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	hosts, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return hosts, nil
}
