package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	m "shelve.dev/pkg/shelve/internal/model"
)

// Supported classifier providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// ErrEmptyClassification is returned when the classifier answers with no path.
var ErrEmptyClassification = errors.New("classifier returned an empty destination")

// ClassifierAdapter names the destination directory for a file.
//
// The answer is a plain path and is not checked against the catalog.
type ClassifierAdapter interface {
	Classify(ctx context.Context, catalog []m.Path, file m.Path) (m.Path, error)
}

// ClassifierConfig selects and configures the language model backing the classifier.
type ClassifierConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// LLMClassifierAdapter asks a chat model where a file belongs.
type LLMClassifierAdapter struct {
	llm     llms.Model
	model   string
	timeout time.Duration
}

// NewLLMClassifierAdapter creates a classifier for the configured provider.
func NewLLMClassifierAdapter(cfg ClassifierConfig) (*LLMClassifierAdapter, error) {
	var (
		model llms.Model
		err   error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}

		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}

		model, err = openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}

		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}

		model, err = anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}

		model, err = ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}

	return NewLLMClassifierAdapterWithModel(model, cfg.Model, cfg.Timeout), nil
}

// NewLLMClassifierAdapterWithModel wraps an existing langchaingo model.
// A zero timeout leaves the call bounded only by ctx.
func NewLLMClassifierAdapterWithModel(model llms.Model, name string, timeout time.Duration) *LLMClassifierAdapter {
	return &LLMClassifierAdapter{
		llm:     model,
		model:   name,
		timeout: timeout,
	}
}

// Model returns the configured model name.
func (a *LLMClassifierAdapter) Model() string {
	return a.model
}

// Classify asks the model for the destination directory of file.
func (a *LLMClassifierAdapter) Classify(ctx context.Context, catalog []m.Path, file m.Path) (m.Path, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, classifierSystemPrompt(catalog)),
		llms.TextParts(schema.ChatMessageTypeHuman, fmt.Sprintf("Where should I move this file: %s", file)),
	}

	slog.Debug("classifying file", "file", file, "candidates", len(catalog), "model", a.model)

	response, err := a.llm.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices: %w", ErrEmptyClassification)
	}

	answer := strings.TrimSpace(response.Choices[0].Content)
	if answer == "" {
		return "", ErrEmptyClassification
	}

	return m.Path(answer), nil
}

func classifierSystemPrompt(catalog []m.Path) string {
	var b strings.Builder

	b.WriteString("You are tasked with sorting files for the user. ")
	b.WriteString("Respond with the directory the file should be put in and only that directory. ")
	b.WriteString("Do not put files in directories that seem to be in use by an application. ")
	b.WriteString("Format the answer as a full path from the root, for example /home/user/Documents. ")
	b.WriteString("No quotation marks or any other text, the answer is used as a path verbatim.\n")
	b.WriteString("Available directories:\n")

	for _, dir := range catalog {
		b.WriteString(string(dir))
		b.WriteByte('\n')
	}

	return b.String()
}

// LazyClassifierAdapter defers building the real classifier until the first
// Classify call, so commands that never classify need no credentials.
type LazyClassifierAdapter struct {
	factory func() (ClassifierAdapter, error)

	once       sync.Once
	classifier ClassifierAdapter
	err        error
}

// NewLazyClassifierAdapter wraps a classifier factory.
func NewLazyClassifierAdapter(factory func() (ClassifierAdapter, error)) *LazyClassifierAdapter {
	return &LazyClassifierAdapter{factory: factory}
}

// Classify builds the classifier on first use and delegates to it.
func (a *LazyClassifierAdapter) Classify(ctx context.Context, catalog []m.Path, file m.Path) (m.Path, error) {
	a.once.Do(func() {
		a.classifier, a.err = a.factory()
	})

	if a.err != nil {
		return "", fmt.Errorf("init classifier: %w", a.err)
	}

	return a.classifier.Classify(ctx, catalog, file)
}
