// internal/parser/detector.go
package parser

import (
	"bytes"
	"os"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeGPX     FileType = "gpx"
	FileTypeUnknown FileType = "unknown"
)

// DetectFileType sniffs the file at path.
func DetectFileType(path string) (FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileTypeUnknown, err
	}
	defer file.Close()

	// First 512 bytes are enough for every signature we check.
	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && n == 0 {
		return FileTypeUnknown, err
	}

	return DetectFileTypeFromData(header[:n]), nil
}

// DetectFileTypeFromData sniffs raw file content.
func DetectFileTypeFromData(data []byte) FileType {
	// FIT header byte 8 starts the ".FIT" signature.
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(head, []byte("<gpx")) ||
		bytes.Contains(head, []byte("topografix.com/GPX")) {
		return FileTypeGPX
	}

	return FileTypeUnknown
}
