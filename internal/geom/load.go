package geom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the overlay formats Decode understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode picks a decoder from the extension of name.
func Decode(name string, b []byte) (Data, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".geojson", ".json":
		return DecodeGeoJSON(b)
	case ".csv":
		return DecodeCSV(bytes.NewReader(b))
	case ".kml":
		return DecodeKML(b)
	case ".wkt":
		return ParseWKT(string(b))
	default:
		return Data{}, fmt.Errorf("unsupported file: %s", ext)
	}
}

func LoadFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	d, err := Decode(path, b)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}
