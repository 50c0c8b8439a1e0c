package export

import (
	"strconv"
	"strings"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/timecode"
)

// Both subtitle exporters skip annotations with blank transcripts: players
// render empty cues as flicker, so there is nothing useful to emit for them.

func exportSRT(collection annotation.Collection, base string) (Document, error) {
	var builder strings.Builder
	index := 0
	for _, item := range swapNormalized(collection) {
		if strings.TrimSpace(item.Transcript) == "" {
			continue
		}
		index++
		builder.WriteString(strconv.Itoa(index))
		builder.WriteString("\n")
		builder.WriteString(srtTimestamp(item.StartTime) + " --> " + srtTimestamp(item.EndTime))
		builder.WriteString("\n")
		builder.WriteString(item.Transcript)
		builder.WriteString("\n\n")
	}

	return Document{
		Filename: base + ".srt",
		MIMEType: "application/x-subrip",
		Data:     []byte(builder.String()),
	}, nil
}

// srtTimestamp re-formats a stored timecode canonically and switches to the
// comma millisecond separator SRT requires.
func srtTimestamp(stored string) string {
	return strings.Replace(timecode.Format(timecode.Parse(stored)), ".", ",", 1)
}

func exportVTT(collection annotation.Collection, base string) (Document, error) {
	var builder strings.Builder
	builder.WriteString("WEBVTT\n\n")
	for _, item := range swapNormalized(collection) {
		if strings.TrimSpace(item.Transcript) == "" {
			continue
		}
		builder.WriteString(item.StartTime + " --> " + item.EndTime)
		builder.WriteString("\n")
		builder.WriteString(item.Transcript)
		builder.WriteString("\n\n")
	}

	return Document{
		Filename: base + ".vtt",
		MIMEType: "text/vtt",
		Data:     []byte(builder.String()),
	}, nil
}
