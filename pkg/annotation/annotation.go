// Package annotation defines the time-coded annotation record and the ordered
// collection the rest of the module operates on. Collections are treated as
// values: every mutation works on a copy and the original is never edited in
// place.
package annotation

import "strings"

// Field names the scalar fields a single annotation exposes for editing.
type Field string

const (
	FieldStartTime  Field = "startTime"
	FieldEndTime    Field = "endTime"
	FieldTranscript Field = "transcript"
	FieldSpeaker    Field = "speaker"
)

// TagKind selects one of the two tag containers on an annotation.
type TagKind string

const (
	TagSentiment TagKind = "sentiment"
	TagSound     TagKind = "sound"
)

// Annotation is one time-coded segment. Start and end are stored exactly as
// entered; they are ordered only at export time, never in storage. Tag lists
// preserve insertion order and hold no empty or duplicate entries.
type Annotation struct {
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Transcript    string   `json:"transcript"`
	Speaker       string   `json:"speaker"`
	SentimentTags []string `json:"sentimentTags"`
	SoundTags     []string `json:"soundTags"`
}

// New returns an annotation spanning the given timecodes with empty
// transcript, speaker, and tag lists.
func New(startTime, endTime string) Annotation {
	return Annotation{
		StartTime:     startTime,
		EndTime:       endTime,
		SentimentTags: []string{},
		SoundTags:     []string{},
	}
}

// Clone returns a deep copy with non-nil tag lists.
func (a Annotation) Clone() Annotation {
	cloned := a
	cloned.SentimentTags = cloneTags(a.SentimentTags)
	cloned.SoundTags = cloneTags(a.SoundTags)
	return cloned
}

// SetField assigns value to the named scalar field, reporting whether the
// field name was recognized.
func (a *Annotation) SetField(field Field, value string) bool {
	switch field {
	case FieldStartTime:
		a.StartTime = value
	case FieldEndTime:
		a.EndTime = value
	case FieldTranscript:
		a.Transcript = value
	case FieldSpeaker:
		a.Speaker = value
	default:
		return false
	}
	return true
}

// Tags returns the tag list for the given kind; an unknown kind reads as empty.
func (a Annotation) Tags(kind TagKind) []string {
	switch kind {
	case TagSentiment:
		return a.SentimentTags
	case TagSound:
		return a.SoundTags
	default:
		return nil
	}
}

// SetTags replaces the tag list for the given kind, reporting whether the
// kind was recognized.
func (a *Annotation) SetTags(kind TagKind, tags []string) bool {
	switch kind {
	case TagSentiment:
		a.SentimentTags = tags
	case TagSound:
		a.SoundTags = tags
	default:
		return false
	}
	return true
}

// Collection is the ordered sequence of annotations; the order is meaningful
// for display and export.
type Collection []Annotation

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	cloned := make(Collection, len(c))
	for i, item := range c {
		cloned[i] = item.Clone()
	}
	return cloned
}

// AddUniqueTag appends the trimmed text unless it is empty or already present
// (case-sensitive). The second result reports whether anything changed.
func AddUniqueTag(tags []string, text string) ([]string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || containsTag(tags, trimmed) {
		return tags, false
	}
	return append(cloneTags(tags), trimmed), true
}

// RemoveTag drops the single occurrence of the trimmed text. The second
// result reports whether anything changed.
func RemoveTag(tags []string, text string) ([]string, bool) {
	trimmed := strings.TrimSpace(text)
	for i, tag := range tags {
		if tag != trimmed {
			continue
		}
		removed := make([]string, 0, len(tags)-1)
		removed = append(removed, tags[:i]...)
		removed = append(removed, tags[i+1:]...)
		return removed, true
	}
	return tags, false
}

// SanitizeTags trims every entry, drops empties, and keeps only the first
// occurrence of each remaining tag. The result is never nil.
func SanitizeTags(tags []string) []string {
	sanitized := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || containsTag(sanitized, trimmed) {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

func containsTag(tags []string, text string) bool {
	for _, tag := range tags {
		if tag == text {
			return true
		}
	}
	return false
}

func cloneTags(tags []string) []string {
	cloned := make([]string, 0, len(tags))
	return append(cloned, tags...)
}
