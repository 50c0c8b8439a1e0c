// Package gemini generates annotation batches with the Gemini API: one
// GenerateContent call carrying the instruction text and the raw audio bytes,
// constrained to a JSON schema for the raw annotation array.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/logging"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

const (
	providerName     = "gemini"
	defaultModelName = "gemini-2.5-flash"
)

type batchGenerator struct {
	filePath string
	opts     annotate.BatchOptions
}

// NewBatchGenerator returns a generator that annotates the audio file at
// filePath on each Generate call.
func NewBatchGenerator(filePath string, opts annotate.BatchOptions) (annotate.BatchGenerator, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, utils.WrapIfNotNil(errors.New("file path is required"))
	}

	return &batchGenerator{
		filePath: filePath,
		opts:     opts,
	}, nil
}

func (g *batchGenerator) Generate(ctx context.Context) ([]annotate.RawAnnotation, annotate.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.opts)
	meta := annotate.InitMetadata(providerName, modelName)
	defer annotate.SetLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	audioBytes, mimeType, err := annotate.ReadAudioFile(g.filePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	client, err := newAPIClient(ctx, g.opts)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	schema, err := batchResponseSchema()
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	instructions := g.opts.ResolveInstructions()
	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(instructions),
				genai.NewPartFromBytes(audioBytes, mimeType),
			},
			genai.RoleUser,
		),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: schema,
	}

	log.Infof("annotation_request provider=%q model=%q mime=%q audio_bytes=%d", providerName, modelName, mimeType, len(audioBytes))

	response, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	applyResponseMetadata(meta, response)
	text := strings.TrimSpace(response.Text())
	if text == "" {
		err = errors.New("annotation response is empty")
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	var records []annotate.RawAnnotation
	if err = json.Unmarshal([]byte(text), &records); err != nil {
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}
	if len(records) == 0 {
		err = errors.New("annotation response contains no records")
		log.Errorf("error: %v", err)
		return nil, meta, utils.WrapIfNotNil(err)
	}

	meta[annotate.MetadataKeyAnnotations] = strconv.Itoa(len(records))
	return records, meta, nil
}

func newAPIClient(ctx context.Context, opts annotate.BatchOptions) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	token := strings.TrimSpace(opts.AuthToken)
	if token == "" {
		token = strings.TrimSpace(os.Getenv("GEMINI_KEY"))
	}
	if token != "" {
		clientCfg.APIKey = token
	}

	baseURL := strings.TrimSpace(opts.URL)
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{
			BaseURL: baseURL,
		}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return client, nil
}

func resolveModelName(opts annotate.BatchOptions) string {
	if name := strings.TrimSpace(opts.Model); name != "" {
		return name
	}
	return defaultModelName
}

func batchResponseSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect([]annotate.RawAnnotation{})

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	var schemaMap map[string]any
	if err = json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	return schemaMap, nil
}

func applyResponseMetadata(meta annotate.GenerationMetadata, response *genai.GenerateContentResponse) {
	if meta == nil || response == nil {
		return
	}

	if usage := response.UsageMetadata; usage != nil {
		meta[annotate.MetadataKeyInputTokens] = strconv.Itoa(int(usage.PromptTokenCount))
		meta[annotate.MetadataKeyOutputTokens] = strconv.Itoa(int(usage.CandidatesTokenCount))
		meta[annotate.MetadataKeyTotalTokens] = strconv.Itoa(int(usage.TotalTokenCount))
	}
	if strings.TrimSpace(response.ResponseID) != "" {
		meta[annotate.MetadataKeyResponseID] = response.ResponseID
	}
}
