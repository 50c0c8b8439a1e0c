// Package openai generates annotation batches from the OpenAI transcription
// API: a verbose-JSON transcription is requested and each timestamped segment
// becomes one raw annotation. Speaker and tags stay empty; they are optional
// in the contract and this provider has no source for them.
package openai

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/logging"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/timecode"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

const (
	providerName     = "openai"
	defaultModelName = "whisper-1"
)

type batchGenerator struct {
	apiClient openai.Client
	filePath  string
	opts      annotate.BatchOptions
}

// NewBatchGenerator returns a generator that transcribes the audio file at
// filePath on each Generate call.
func NewBatchGenerator(filePath string, opts annotate.BatchOptions) (annotate.BatchGenerator, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, utils.WrapIfNotNil(errors.New("file path is required"))
	}

	requestOpts := make([]option.RequestOption, 0, 2)
	if baseURL := strings.TrimSpace(opts.URL); baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(baseURL))
	}
	if token := strings.TrimSpace(opts.AuthToken); token != "" {
		requestOpts = append(requestOpts, option.WithAPIKey(token))
	}

	return &batchGenerator{
		apiClient: openai.NewClient(requestOpts...),
		filePath:  filePath,
		opts:      opts,
	}, nil
}

func (g *batchGenerator) Generate(ctx context.Context) ([]annotate.RawAnnotation, annotate.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.opts)
	meta := annotate.InitMetadata(providerName, modelName)
	defer annotate.SetLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)

	// The MIME check runs up front so a non-audio file fails before any
	// network traffic.
	if _, err := annotate.ResolveAudioMIMEType(g.filePath); err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	file, err := os.Open(g.filePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}
	defer func() {
		_ = file.Close()
	}()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(modelName),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}
	if instructions := g.opts.ResolveInstructions(); instructions != "" {
		params.Prompt = param.NewOpt(instructions)
	}

	log.Infof("annotation_request provider=%q model=%q file=%q", providerName, modelName, g.filePath)

	response, err := g.apiClient.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}
	if response == nil {
		err = errors.New("audio transcriptions API returned nil response")
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	applyResponseMetadata(meta, response)
	records := segmentsToRecords(response)
	if len(records) == 0 {
		err = errors.New("transcription response contains no timestamped segments")
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	meta[annotate.MetadataKeyAnnotations] = strconv.Itoa(len(records))
	return records, meta, nil
}

func segmentsToRecords(response *openai.AudioTranscriptionNewResponseUnion) []annotate.RawAnnotation {
	records := make([]annotate.RawAnnotation, 0, len(response.Segments))
	for _, segment := range response.Segments {
		transcript := strings.TrimSpace(segment.Text)
		if transcript == "" {
			continue
		}
		records = append(records, annotate.RawAnnotation{
			StartTime:  timecode.Format(segment.Start),
			EndTime:    timecode.Format(segment.End),
			Transcript: transcript,
		})
	}
	return records
}

func resolveModelName(opts annotate.BatchOptions) string {
	if name := strings.TrimSpace(opts.Model); name != "" {
		return name
	}
	return defaultModelName
}

func applyResponseMetadata(meta annotate.GenerationMetadata, response *openai.AudioTranscriptionNewResponseUnion) {
	if meta == nil || response == nil {
		return
	}

	meta[annotate.MetadataKeyInputTokens] = strconv.FormatInt(response.Usage.InputTokens, 10)
	meta[annotate.MetadataKeyOutputTokens] = strconv.FormatInt(response.Usage.OutputTokens, 10)
	meta[annotate.MetadataKeyTotalTokens] = strconv.FormatInt(response.Usage.TotalTokens, 10)
}
