// Package annotate defines the contract with the generative-AI collaborator:
// the raw record shape a provider returns, the batch-generator interface, and
// the classification of upstream failures. Providers live in subpackages.
package annotate

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
)

// RawAnnotation is one record as returned by a provider. Start, end, and
// transcript are required; speaker and the tag lists are optional and default
// to empty when the batch is applied.
type RawAnnotation struct {
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Transcript    string   `json:"transcript"`
	Speaker       string   `json:"speaker,omitempty"`
	SentimentTags []string `json:"sentimentTags,omitempty"`
	SoundTags     []string `json:"soundTags,omitempty"`
}

// Collection converts a raw batch into an annotation collection, ready for
// the workspace to normalize and apply.
func Collection(records []RawAnnotation) annotation.Collection {
	collection := make(annotation.Collection, len(records))
	for i, record := range records {
		collection[i] = annotation.Annotation{
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			Transcript:    record.Transcript,
			Speaker:       record.Speaker,
			SentimentTags: record.SentimentTags,
			SoundTags:     record.SoundTags,
		}
	}
	return collection
}

// BatchOptions configures a provider. Instructions, when set, override the
// template-selected instruction text.
type BatchOptions struct {
	AuthToken    string
	URL          string
	Model        string
	Template     string
	Instructions string
}

// ResolveInstructions returns the instruction text the provider should send:
// the custom Instructions when present, otherwise the named template
// (unknown names fall back to the general template).
func (o BatchOptions) ResolveInstructions() string {
	if instructions := strings.TrimSpace(o.Instructions); instructions != "" {
		return instructions
	}
	return TemplateInstructions(o.Template)
}

// BatchGenerator produces one annotation batch from an audio source. A
// failed generation returns a classified error and no records; the caller
// applies the batch to the workspace only on success.
type BatchGenerator interface {
	Generate(ctx context.Context) ([]RawAnnotation, GenerationMetadata, error)
}

// GenerationMetadata carries provider diagnostics for one generation call.
type GenerationMetadata map[string]string

const (
	MetadataKeyProvider     = "provider"
	MetadataKeyModel        = "model"
	MetadataKeyLatencyMs    = "latency_ms"
	MetadataKeyInputTokens  = "input_tokens"
	MetadataKeyOutputTokens = "output_tokens"
	MetadataKeyTotalTokens  = "total_tokens"
	MetadataKeyResponseID   = "response_id"
	MetadataKeyAnnotations  = "annotation_count"
)

// InitMetadata seeds the metadata for a provider call.
func InitMetadata(provider, modelName string) GenerationMetadata {
	if strings.TrimSpace(modelName) == "" {
		modelName = "unknown"
	}

	return GenerationMetadata{
		MetadataKeyProvider: provider,
		MetadataKeyModel:    modelName,
	}
}

// SetLatencyMetadata records the elapsed time since start in milliseconds.
func SetLatencyMetadata(meta GenerationMetadata, start time.Time) {
	if meta == nil {
		return
	}
	meta[MetadataKeyLatencyMs] = strconv.FormatInt(time.Since(start).Milliseconds(), 10)
}
