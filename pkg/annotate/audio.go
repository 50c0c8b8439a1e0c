package annotate

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

// ReadAudioFile loads the audio payload a provider sends: the file bytes and
// the resolved audio MIME type.
func ReadAudioFile(filePath string) ([]byte, string, error) {
	mimeType, err := ResolveAudioMIMEType(filePath)
	if err != nil {
		return nil, "", utils.WrapIfNotNil(err)
	}

	audioBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", utils.WrapIfNotNil(err)
	}

	return audioBytes, mimeType, nil
}

// ResolveAudioMIMEType maps the file extension to an audio MIME type, falling
// back to the platform MIME table for extensions outside the common set. Any
// non-audio result is rejected.
func ResolveAudioMIMEType(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filePath)))
	if ext == "" {
		return "", utils.WrapIfNotNil(errors.New("audio file extension is required to determine mime type"))
	}

	switch ext {
	case ".wav":
		return "audio/wav", nil
	case ".mp3":
		return "audio/mpeg", nil
	case ".m4a":
		return "audio/mp4", nil
	case ".mp4":
		return "audio/mp4", nil
	case ".webm":
		return "audio/webm", nil
	case ".ogg":
		return "audio/ogg", nil
	case ".flac":
		return "audio/flac", nil
	case ".aac":
		return "audio/aac", nil
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "", utils.WrapIfNotNil(errors.New("unsupported audio file extension: " + ext))
	}

	// Strip parameters such as "; charset=utf-8".
	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if !strings.HasPrefix(mimeType, "audio/") {
		return "", utils.WrapIfNotNil(errors.New("unsupported audio mime type: " + mimeType))
	}
	return mimeType, nil
}
