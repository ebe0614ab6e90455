package service

import (
	"fmt"
	"math/rand"
	"mime"
	"strings"
	"time"
)

var allowedAudioTypes = map[string]bool{
	"audio/webm":  true,
	"audio/ogg":   true,
	"audio/mp3":   true,
	"audio/mp4":   true,
	"audio/mpeg":  true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/wave":  true,
}

// AcceptContentType reports whether an upload's declared content type is
// recognized as audio. Anything under audio/ passes even when it is not in
// the allow-list, since browsers attach codec parameters and vendor types.
func AcceptContentType(contentType string) bool {
	mediaType := normalizeMediaType(contentType)
	return allowedAudioTypes[mediaType] || strings.HasPrefix(mediaType, "audio/")
}

// GenerateFilename builds a collision-resistant name for a stored upload:
// recording-<unix-millis>-<random>.<ext>.
func GenerateFilename(contentType string) string {
	return fmt.Sprintf("recording-%d-%d.%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ExtensionFor(contentType))
}

// ExtensionFor maps a declared content type to the stored file extension.
// mp4 audio is stored as mp3 for playback compatibility; unknown types fall
// back to webm, the default recording container.
func ExtensionFor(contentType string) string {
	switch normalizeMediaType(contentType) {
	case "audio/mp3", "audio/mpeg":
		return "mp3"
	case "audio/ogg":
		return "ogg"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "wav"
	case "audio/mp4":
		return "mp3"
	default:
		return "webm"
	}
}

// normalizeMediaType strips parameters like ;codecs=opus that browsers
// attach to recorded blobs.
func normalizeMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
