package nuget

import (
	"bytes"
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

// Parsers returns one parser per supported manifest kind.
func Parsers() []deps.ManifestParser {
	return []deps.ManifestParser{
		&ProjectParser{},
		&PackagesConfigParser{},
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readDocument reads r fully and reports whether it holds any markup.
func readDocument(r io.Reader) ([]byte, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeIO, err, "read manifest")
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return data, len(bytes.TrimSpace(data)) > 0, nil
}

func newDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	return d
}
