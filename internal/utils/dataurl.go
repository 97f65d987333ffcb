package utils

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxPayloadBytes caps files embedded into the progress document
const MaxPayloadBytes = 5 << 20

// EncodeDataURL reads path and returns it as a base64 data URL. The detected
// media type must belong to family ("image", "audio").
func EncodeDataURL(path, family string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}
	if info.Size() > MaxPayloadBytes {
		return "", fmt.Errorf("%s is too large (%d KB, max %d KB)", path, info.Size()/1024, MaxPayloadBytes/1024)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}

	mediaType := detectMediaType(path, data)
	if !strings.HasPrefix(mediaType, family+"/") {
		return "", fmt.Errorf("%s does not look like an %s file (detected %s)", filepath.Base(path), family, mediaType)
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// extensionTypes covers audio formats missing from the built-in mime table
var extensionTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".heic": "image/heic",
}

// detectMediaType sniffs the content first and falls back to the extension
func detectMediaType(path string, data []byte) string {
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if sniffed != "" && sniffed != "application/octet-stream" && sniffed != "text/plain" {
		return sniffed
	}
	ext := strings.ToLower(filepath.Ext(path))
	if known, ok := extensionTypes[ext]; ok {
		return known
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		if parsed, _, err := mime.ParseMediaType(byExt); err == nil {
			return parsed
		}
	}
	return sniffed
}
