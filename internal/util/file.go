package util

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// ValidateMimeType sniffs the first 512 bytes of reader and checks them against allowedTypes,
// which may hold prefixes such as "image/" or full types such as "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, ErrInvalidFileType
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeVideo) || mimeType == "application/x-mpegURL"
}

func IsAllowedVideoExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range AllowedVideoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
