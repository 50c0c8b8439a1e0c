// Package export serializes an annotation collection into the eight
// supported document and subtitle formats. Every exporter is a pure function
// from a collection and a base filename to a Document; the registry maps
// format tags to exporters, so adding a format means adding one table entry.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/timecode"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

// Format tags one of the supported export formats.
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatXML      Format = "xml"
	FormatSRT      Format = "srt"
	FormatVTT      Format = "vtt"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat reports a format tag outside the registry.
var ErrUnknownFormat = errors.New("unknown export format")

// Document is one export result, ready to hand to the file system boundary.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Exporter turns a collection and a base filename into a Document. Exporters
// never mutate the collection they are given.
type Exporter func(collection annotation.Collection, base string) (Document, error)

var registry = map[Format]Exporter{
	FormatJSON:     exportJSON,
	FormatText:     exportText,
	FormatMarkdown: exportMarkdown,
	FormatCSV:      exportCSV,
	FormatXML:      exportXML,
	FormatSRT:      exportSRT,
	FormatVTT:      exportVTT,
	FormatPDF:      exportPDF,
}

// Export dispatches to the exporter registered for the format.
func Export(format Format, collection annotation.Collection, base string) (Document, error) {
	exporter, ok := registry[format]
	if !ok {
		return Document{}, utils.WrapIfNotNil(fmt.Errorf("%w: %q", ErrUnknownFormat, format))
	}
	return exporter(collection, base)
}

// Registered reports whether a format tag has an exporter.
func Registered(format Format) bool {
	_, ok := registry[format]
	return ok
}

// Formats lists the registered format tags in sorted order.
func Formats() []Format {
	formats := make([]Format, 0, len(registry))
	for format := range registry {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// swapNormalized returns a copy of the collection with start and end swapped
// on any annotation whose start parses after its end. This guards exports
// against timestamps entered in the wrong order; storage keeps the raw
// values, and the CSV, XML, and PDF exporters deliberately bypass this step.
func swapNormalized(collection annotation.Collection) annotation.Collection {
	normalized := collection.Clone()
	for i, item := range normalized {
		if timecode.Parse(item.StartTime) > timecode.Parse(item.EndTime) {
			normalized[i].StartTime, normalized[i].EndTime = item.EndTime, item.StartTime
		}
	}
	return normalized
}

func speakerOrDefault(speaker, fallback string) string {
	if speaker == "" {
		return fallback
	}
	return speaker
}
