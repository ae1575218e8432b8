package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tahcohcat/gofigure-interrogation/internal/auth"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/generator"
	"github.com/tahcohcat/gofigure-interrogation/internal/llm"
	"github.com/tahcohcat/gofigure-interrogation/internal/tts"
)

var (
	themeFlag   string
	outFlag     string
	textFlag    string
	suspectFlag string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new case with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := llm.NewLLMClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		if err := client.IsModelAvailable(ctx); err != nil {
			log.WithError(err).Warn("Model availability check failed, trying anyway")
		}

		theme := themeFlag
		if theme == "" {
			theme = generator.DefaultTheme
		}
		log.Info("Generating case: " + theme)

		scenario, err := generator.New(client).Generate(ctx, theme)
		if err != nil {
			return err
		}

		path := outFlag
		if path == "" {
			path = cfg.Game.GeneratedPath
		}
		if err := generator.Save(scenario, path); err != nil {
			return err
		}

		fmt.Printf("Saved \"%s\" to %s\n", scenario.Meta.Title, path)
		for _, problem := range scenario.Validate() {
			fmt.Printf("  warning: %s\n", problem)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario.json...]",
	Short: "Check scenarios for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, e := range library().List() {
				if e.Path != "" {
					args = append(args, e.Path)
				}
			}
			if len(args) == 0 {
				fmt.Println("No scenario files found.")
				return nil
			}
		}

		failed := 0
		for _, path := range args {
			scenario, err := game.LoadScenario(path)
			if err != nil {
				fmt.Printf("✗ %s: %v\n", path, err)
				failed++
				continue
			}

			problems := scenario.Validate()
			if len(problems) == 0 {
				fmt.Printf("✓ %s (%s)\n", path, scenario.Meta.Title)
				continue
			}

			failed++
			fmt.Printf("✗ %s (%s)\n", path, scenario.Meta.Title)
			for _, p := range problems {
				fmt.Printf("    - %s\n", p)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios have problems", failed, len(args))
		}
		return nil
	},
}

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Render a case briefing or a suspect's line to MP3",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if !cfg.Tts.Enabled {
			return fmt.Errorf("narration is disabled, set tts.enabled to true")
		}
		synth := tts.New(ctx, cfg.Tts)
		if closer, ok := synth.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		scenario, err := loadScenario()
		if err != nil {
			return err
		}

		text := textFlag
		if text == "" {
			text = scenario.Meta.IntroText
		}

		voice := cfg.Tts.NarratorVoice
		if suspectFlag != "" {
			s := scenario.FindSuspect(suspectFlag)
			if s == nil {
				return fmt.Errorf("%w: %q", game.ErrUnknownSuspect, suspectFlag)
			}
			if s.Voice != "" {
				voice = s.Voice
			}
		}

		mood, line := tts.MoodFromReply(text)
		audio, err := synth.Synthesize(ctx, line, mood, voice)
		if err != nil {
			return err
		}
		if len(audio) == 0 {
			return fmt.Errorf("%s voice produced no audio", synth.Name())
		}

		path := outFlag
		if path == "" {
			path = slug(scenario.Meta.Title) + ".mp3"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Printf("Wrote %d bytes to %s\n", len(audio), path)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for server.password_hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&themeFlag, "theme", "", "theme for the new case")
	generateCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default is game.generated_path)")

	narrateCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output MP3 file")
	narrateCmd.Flags().StringVar(&textFlag, "text", "", "text to speak instead of the briefing")
	narrateCmd.Flags().StringVar(&suspectFlag, "suspect", "", "speak in this suspect's voice")

	configCmd.AddCommand(hashPasswordCmd)
}

func slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "narration"
	}
	return s
}
