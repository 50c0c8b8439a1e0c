package annotate

import "strings"

// TemplateGeneral is the default instruction template.
const (
	TemplateGeneral    = "general"
	TemplateInterview  = "interview"
	TemplatePodcast    = "podcast"
	TemplateSoundscape = "soundscape"
)

const instructionPreamble = "Listen to this audio recording and produce time-coded annotations. " +
	"Return a JSON array where each element has startTime and endTime in HH:MM:SS.mmm format, " +
	"a transcript of the speech in that segment, the speaker when identifiable, " +
	"sentimentTags describing the emotional tone, and soundTags naming non-speech sound events. "

var instructionTemplates = map[string]string{
	TemplateGeneral: instructionPreamble +
		"Segment the audio wherever the speaker, topic, or soundscape changes.",
	TemplateInterview: instructionPreamble +
		"This is an interview: label speakers as Interviewer and Interviewee (or by name when stated), " +
		"start a new segment at every question and answer, and tag hesitation or discomfort in sentimentTags.",
	TemplatePodcast: instructionPreamble +
		"This is a podcast episode: distinguish hosts from guests, mark ad reads and intro/outro music " +
		"in soundTags, and keep segments aligned to topic changes.",
	TemplateSoundscape: instructionPreamble +
		"Focus on the sound environment: transcripts may be empty, but soundTags must name every " +
		"distinct sound event (traffic, birdsong, machinery) with one segment per event.",
}

// TemplateNames lists the available template names.
func TemplateNames() []string {
	return []string{TemplateGeneral, TemplateInterview, TemplatePodcast, TemplateSoundscape}
}

// TemplateInstructions returns the instruction text for the named template;
// unknown or empty names fall back to the general template.
func TemplateInstructions(name string) string {
	if text, ok := instructionTemplates[strings.ToLower(strings.TrimSpace(name))]; ok {
		return text
	}
	return instructionTemplates[TemplateGeneral]
}
