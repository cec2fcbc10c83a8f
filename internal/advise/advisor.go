package advise

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/domain"
)

// Advisor explains verification findings using an LLM
type Advisor struct {
	config  config.AdvisorConfig
	logger  *zap.SugaredLogger
	genkit  *genkit.Genkit
	modelID string
}

// NewAdvisor creates a new Advisor for the configured provider
func NewAdvisor(ctx context.Context, cfg config.AdvisorConfig, logger *zap.SugaredLogger) (*Advisor, error) {
	var g *genkit.Genkit
	modelID := ModelID(cfg)

	switch cfg.Provider {
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key for provider %s", cfg.Provider)
		}

		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&oai.OpenAI{
				APIKey: apiKey,
				Opts:   opts,
			}),
		)

	case "googleai", "":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no API key for provider googleai")
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: apiKey,
			}),
		)

	default:
		return nil, fmt.Errorf("unsupported advisor provider: %s", cfg.Provider)
	}

	return &Advisor{
		config:  cfg,
		logger:  logger,
		genkit:  g,
		modelID: modelID,
	}, nil
}

// ModelID returns the Genkit model name, prefixed with the provider
func ModelID(cfg config.AdvisorConfig) string {
	provider := cfg.Provider
	if provider == "" {
		provider = "googleai"
	}

	model := cfg.Model
	if model == "" {
		if provider == "openai" {
			model = "gpt-4o-mini"
		} else {
			model = "gemini-2.0-flash"
		}
	}

	if strings.Contains(model, "/") {
		return model
	}
	return provider + "/" + model
}

// Advise returns a short explanation of how to resolve the findings
func (a *Advisor) Advise(ctx context.Context, res *domain.RunResult) (string, error) {
	if !res.HasFindings() {
		return "", nil
	}

	a.logger.Debugw("requesting advice", "model", a.modelID, "findings", res.TotalFindings())

	answer, err := genkit.GenerateText(ctx, a.genkit,
		ai.WithModelName(a.modelID),
		ai.WithPrompt(BuildPrompt(res)),
	)
	if err != nil {
		return "", fmt.Errorf("generating advice: %w", err)
	}

	return CleanResponse(answer), nil
}

// BuildPrompt renders the findings into the advisor prompt
func BuildPrompt(res *domain.RunResult) string {
	var sb strings.Builder

	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n## Findings\n\n")

	for _, f := range res.Findings() {
		sb.WriteString(fmt.Sprintf("- [%s] (%s) %s\n", f.Severity, f.Check, f.Message))
	}

	sb.WriteString(outputInstructions)

	return sb.String()
}

// CleanResponse strips code fences and surrounding whitespace
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if nl := strings.Index(text, "\n"); nl != -1 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}

const systemPrompt = `You are a senior Android engineer helping a developer before they compile a Kotlin / Jetpack Compose / Room project. A static pre-build checker produced the findings below. The checker only counts characters and matches text, so some findings may be false positives.

## Your Principles

1. **Be brief** – One or two sentences per finding.
2. **Be concrete** – Name the file or Gradle line to change.
3. **Flag false positives** – Say so when a finding is likely harmless (for example braces inside string templates).
4. **Errors first** – Address blocking errors before warnings.`

const outputInstructions = `
## Required Output Format

Respond with a plain-text bullet list, one bullet per finding, in the same order. No preamble and no closing remarks.`
