// Package filterlist loads the test filter files that ride along build
// targets as data. Every line is an opaque identifier owned by the external
// test runners that consume these files. daedalus never interprets entries,
// not even comment or exclusion markers; it only carries the files through
// the graph.
package filterlist

import (
	"bufio"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Parse returns all lines of r exactly as written, including blank lines and
// any marker characters. Line breaks (LF or CRLF) are the only thing removed.
func Parse(r io.Reader) ([]string, error) {
	var entries []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entries = append(entries, scanner.Text())
	}

	err := scanner.Err()
	if err != nil {
		return nil, eris.Wrap(err, "failed to read the filter list")
	}

	return entries, nil
}

// Load reads the filter list at path.
func Load(path string) ([]string, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", path)
	}
	defer handle.Close()

	return Parse(handle)
}
