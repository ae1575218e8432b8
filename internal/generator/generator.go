package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// ErrNoScenario is returned when the model's answer holds no usable case.
var ErrNoScenario = errors.New("no scenario generated")

const DefaultTheme = "a murder in a snowed-in mountain lodge"

type Generator struct {
	llm    llm.LLM
	logger *logger.Log
}

func New(client llm.LLM) *Generator {
	return &Generator{llm: client, logger: logger.New()}
}

// Generate asks the model for a case on theme. Structural problems are
// logged but do not fail generation.
func (g *Generator) Generate(ctx context.Context, theme string) (*game.Scenario, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultTheme
	}

	g.logger.Info(fmt.Sprintf("Asking the AI to write a mystery about: '%s'", theme))

	raw, err := g.llm.GenerateResponse(ctx, SystemPrompt, themePrompt(theme))
	if err != nil {
		return nil, fmt.Errorf("failed to generate scenario: %w", err)
	}

	jsonText, err := extractJSONFromResponse(raw)
	if err != nil {
		return nil, err
	}

	scenario, err := game.ParseScenario(strings.NewReader(jsonText))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoScenario, err)
	}
	if len(scenario.Suspects) == 0 {
		return nil, fmt.Errorf("%w: the case has no suspects", ErrNoScenario)
	}

	for _, problem := range scenario.Validate() {
		g.logger.Warn("Generated scenario: " + problem)
	}

	return scenario, nil
}

// Save writes the scenario as indented JSON, creating parent directories.
func Save(scenario *game.Scenario, path string) error {
	if scenario == nil {
		return ErrNoScenario
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scenario file: %w", err)
	}
	defer f.Close()

	if err := scenario.Save(f); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}
	return nil
}

// extractJSONFromResponse strips markdown fences and chatter around the
// outermost JSON object.
func extractJSONFromResponse(response string) (string, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in response", ErrNoScenario)
	}

	return response[start : end+1], nil
}
