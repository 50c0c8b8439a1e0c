// Command annotator runs the full pipeline from the command line: it loads an
// audio file, asks a provider for an annotation batch, applies the batch to a
// workspace, and writes the selected export formats to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate/gemini"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate/openai"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/export"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/logging"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/workspace"
)

type providerConstructor func(filePath string, opts annotate.BatchOptions) (annotate.BatchGenerator, error)

var providers = map[string]providerConstructor{
	"gemini": gemini.NewBatchGenerator,
	"openai": openai.NewBatchGenerator,
}

func main() {
	ctx := context.Background()
	log := logging.NewLogger(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic: %v", r)
			utils.PrintStack("annotator", log)
			os.Exit(1)
		}
	}()

	input := flag.String("input", "", "Audio file to annotate (required)")
	provider := flag.String("provider", "gemini", "Annotation provider: gemini|openai")
	model := flag.String("model", "", "Provider model name override")
	template := flag.String("template", annotate.TemplateGeneral,
		"Instruction template: "+strings.Join(annotate.TemplateNames(), "|"))
	instructions := flag.String("instructions", "", "Custom instruction text (overrides -template)")
	formats := flag.String("formats", "", "Comma-separated export formats (default: all)")
	outDir := flag.String("out", ".", "Directory to write exports into")
	envFile := flag.String("env", "", "Path to a .env settings file (default: ./.env when present)")
	flag.Parse()

	if err := run(ctx, runConfig{
		input:        *input,
		provider:     *provider,
		model:        *model,
		template:     *template,
		instructions: *instructions,
		formats:      *formats,
		outDir:       *outDir,
		envFile:      *envFile,
	}); err != nil {
		log.Errorf("error: %v", err)
		fmt.Fprintln(os.Stderr, "annotator:", err)
		os.Exit(1)
	}
}

type runConfig struct {
	input        string
	provider     string
	model        string
	template     string
	instructions string
	formats      string
	outDir       string
	envFile      string
}

func run(ctx context.Context, cfg runConfig) error {
	log := logging.NewLogger(ctx)

	if err := loadSettings(cfg.envFile); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.input) == "" {
		flag.Usage()
		return fmt.Errorf("%w: -input is required", workspace.ErrInvalidInput)
	}

	construct, ok := providers[strings.ToLower(strings.TrimSpace(cfg.provider))]
	if !ok {
		return fmt.Errorf("%w: unknown provider %q", workspace.ErrInvalidInput, cfg.provider)
	}

	requested, err := resolveFormats(cfg.formats)
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.input)
	if err != nil {
		return utils.WrapIfNotNil(err)
	}
	mimeType, err := annotate.ResolveAudioMIMEType(cfg.input)
	if err != nil {
		return fmt.Errorf("%w: %w", workspace.ErrInvalidInput, err)
	}

	ws := workspace.New()
	if err = ws.LoadSource(ctx, filepath.Base(cfg.input), mimeType, info.Size()); err != nil {
		return err
	}

	generator, err := construct(cfg.input, annotate.BatchOptions{
		AuthToken:    providerToken(cfg.provider),
		Model:        cfg.model,
		Template:     cfg.template,
		Instructions: cfg.instructions,
	})
	if err != nil {
		return err
	}

	records, meta, err := generator.Generate(ctx)
	if err != nil {
		// A failed call never touches the workspace: classify and stop.
		return annotate.ClassifyError(err)
	}
	log.Infof("batch_generated provider=%q model=%q count=%d latency_ms=%s",
		meta[annotate.MetadataKeyProvider], meta[annotate.MetadataKeyModel],
		len(records), meta[annotate.MetadataKeyLatencyMs])

	ws.ReplaceAll(ctx, annotate.Collection(records))

	if err = os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return utils.WrapIfNotNil(err)
	}
	for _, format := range requested {
		doc, exportErr := export.Export(format, ws.Current(), ws.ExportBaseName())
		if exportErr != nil {
			return exportErr
		}
		target := filepath.Join(cfg.outDir, doc.Filename)
		if writeErr := os.WriteFile(target, doc.Data, 0o644); writeErr != nil {
			return utils.WrapIfNotNil(writeErr)
		}
		log.Infof("export_written format=%q file=%q bytes=%d", format, target, len(doc.Data))
	}

	return nil
}

// loadSettings loads environment overrides the way the integration suites do:
// an explicit file must exist, the default ./.env may be absent.
func loadSettings(envFile string) error {
	if file := strings.TrimSpace(envFile); file != "" {
		return utils.WrapIfNotNil(godotenv.Overload(file))
	}
	if _, err := os.Stat(".env"); err == nil {
		return utils.WrapIfNotNil(godotenv.Overload(".env"))
	}
	return nil
}

func providerToken(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return strings.TrimSpace(os.Getenv("OPEN_API_TOKEN"))
	default:
		return strings.TrimSpace(os.Getenv("GEMINI_KEY"))
	}
}

func resolveFormats(list string) ([]export.Format, error) {
	if strings.TrimSpace(list) == "" {
		return export.Formats(), nil
	}

	requested := make([]export.Format, 0)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		requested = append(requested, export.Format(name))
	}
	if len(requested) == 0 {
		return export.Formats(), nil
	}

	for _, format := range requested {
		if !export.Registered(format) {
			return nil, fmt.Errorf("%w: %q", export.ErrUnknownFormat, format)
		}
	}
	return requested, nil
}
