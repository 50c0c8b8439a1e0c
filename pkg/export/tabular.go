package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"strings"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

// The CSV and XML exporters dump the raw stored values: they skip the
// start/end swap so the file reflects exactly what was entered.

func exportCSV(collection annotation.Collection, base string) (Document, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	records := [][]string{
		{"startTime", "endTime", "speaker", "transcript", "sentimentTags", "soundTags"},
	}
	for _, item := range collection {
		records = append(records, []string{
			item.StartTime,
			item.EndTime,
			item.Speaker,
			item.Transcript,
			strings.Join(item.SentimentTags, ";"),
			strings.Join(item.SoundTags, ";"),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return Document{}, utils.WrapIfNotNil(err)
	}

	return Document{
		Filename: base + ".csv",
		MIMEType: "text/csv",
		Data:     buf.Bytes(),
	}, nil
}

type xmlAnnotation struct {
	StartTime     string   `xml:"startTime"`
	EndTime       string   `xml:"endTime"`
	Speaker       string   `xml:"speaker"`
	Transcript    string   `xml:"transcript"`
	SentimentTags []string `xml:"sentimentTags>tag"`
	SoundTags     []string `xml:"soundTags>tag"`
}

type xmlAnnotations struct {
	XMLName     xml.Name        `xml:"annotations"`
	Annotations []xmlAnnotation `xml:"annotation"`
}

func exportXML(collection annotation.Collection, base string) (Document, error) {
	doc := xmlAnnotations{
		Annotations: make([]xmlAnnotation, 0, len(collection)),
	}
	for _, item := range collection {
		doc.Annotations = append(doc.Annotations, xmlAnnotation{
			StartTime:     item.StartTime,
			EndTime:       item.EndTime,
			Speaker:       item.Speaker,
			Transcript:    item.Transcript,
			SentimentTags: item.SentimentTags,
			SoundTags:     item.SoundTags,
		})
	}

	payload, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, utils.WrapIfNotNil(err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(payload)
	buf.WriteByte('\n')

	return Document{
		Filename: base + ".xml",
		MIMEType: "application/xml",
		Data:     buf.Bytes(),
	}, nil
}
