package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
)

// WriteText writes r in the human-readable block format.
func WriteText(r *deps.ScanResult, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", r.Repository.FullName())
	if r.Repository.Stars > 0 {
		fmt.Fprintf(&b, "Stars: %d\n", r.Repository.Stars)
	}
	for _, p := range r.Packages {
		if p.Version.IsAny() {
			b.WriteString(p.ID)
		} else {
			b.WriteString(p.String())
		}
		b.WriteByte('\n')
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "! %s: %s\n", f.Path, f.Error)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(r *deps.ScanResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSONLines encodes r as a single line of JSON.
func WriteJSONLines(r *deps.ScanResult, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes results to a file at path as consecutive indented JSON
// objects, readable with [ImportJSON].
func ExportJSON(results []*deps.ScanResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	for _, r := range results {
		if err := WriteJSON(r, f); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
