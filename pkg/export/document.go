package export

import (
	"encoding/json"
	"strings"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

const textSeparator = "----------------------------------------"

func exportJSON(collection annotation.Collection, base string) (Document, error) {
	payload, err := json.MarshalIndent(swapNormalized(collection), "", "  ")
	if err != nil {
		return Document{}, utils.WrapIfNotNil(err)
	}

	return Document{
		Filename: base + "_annotations.json",
		MIMEType: "application/json",
		Data:     append(payload, '\n'),
	}, nil
}

func exportText(collection annotation.Collection, base string) (Document, error) {
	var builder strings.Builder
	for _, item := range swapNormalized(collection) {
		builder.WriteString("[" + item.StartTime + " - " + item.EndTime + "] ")
		builder.WriteString(speakerOrDefault(item.Speaker, "Unknown Speaker"))
		builder.WriteString("\n")
		builder.WriteString(item.Transcript)
		builder.WriteString("\n")
		builder.WriteString(textSeparator)
		builder.WriteString("\n")
	}

	return Document{
		Filename: base + ".txt",
		MIMEType: "text/plain",
		Data:     []byte(builder.String()),
	}, nil
}

func exportMarkdown(collection annotation.Collection, base string) (Document, error) {
	var builder strings.Builder
	for _, item := range swapNormalized(collection) {
		builder.WriteString("**[" + item.StartTime + " - " + item.EndTime + "] ")
		builder.WriteString(speakerOrDefault(item.Speaker, "Unknown Speaker"))
		builder.WriteString("**\n\n")
		builder.WriteString("> " + item.Transcript + "\n\n")
	}

	return Document{
		Filename: base + ".md",
		MIMEType: "text/markdown",
		Data:     []byte(builder.String()),
	}, nil
}
