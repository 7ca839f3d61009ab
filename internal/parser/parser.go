// internal/parser/parser.go
package parser

import (
	"errors"
	"fmt"
	"os"

	"garmin-dashboard/internal/models"
)

// ErrNoTrackData is returned when a file decodes but carries no usable
// session or track content.
var ErrNoTrackData = errors.New("no track data in activity file")

// Parser extracts summary metrics from one activity file format.
type Parser interface {
	Parse(data []byte) (*models.ActivityMetrics, error)
}

// ParserFor picks a parser by sniffing the content.
func ParserFor(data []byte) (Parser, error) {
	switch DetectFileTypeFromData(data) {
	case FileTypeFIT:
		return NewFITParser(), nil
	case FileTypeGPX:
		return NewGPXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported activity file type")
	}
}

// ParseFile sniffs and parses the file at path.
func ParseFile(path string) (*models.ActivityMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseData(data)
}

// ParseData sniffs and parses raw file content.
func ParseData(data []byte) (*models.ActivityMetrics, error) {
	p, err := ParserFor(data)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}
