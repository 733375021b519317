package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
)

// ReadJSON decodes every scan result in r. Both a single indented object and
// a stream of JSON lines are accepted.
func ReadJSON(r io.Reader) ([]*deps.ScanResult, error) {
	dec := json.NewDecoder(r)
	var out []*deps.ScanResult
	for {
		var res deps.ScanResult
		err := dec.Decode(&res)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode result %d: %w", len(out)+1, err)
		}
		out = append(out, &res)
	}
}

// ImportJSON reads scan results from the file at path.
func ImportJSON(path string) ([]*deps.ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
