package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tahcohcat/gofigure-interrogation/config"
	"github.com/tahcohcat/gofigure-interrogation/internal/database"
	"github.com/tahcohcat/gofigure-interrogation/internal/dialogue"
	"github.com/tahcohcat/gofigure-interrogation/internal/embedding"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
	"github.com/tahcohcat/gofigure-interrogation/internal/services"
	"github.com/tahcohcat/gofigure-interrogation/internal/terminal"
)

var (
	cfgFile      string
	scenarioFlag string
	plainFlag    bool
	cfg          *config.Config
	log          = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "gofigure",
	Short: "Detective interrogation game for the terminal",
	Long: "Question three suspects, catch the lies in their stories and name the killer.\n" +
		"Answers come from each suspect's own statements, matched to your questions.",
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a case in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		scenario, err := loadScenario()
		if err != nil {
			return err
		}
		for _, problem := range scenario.Validate() {
			log.Warn("Scenario: " + problem)
		}

		brain, err := newBrain(ctx)
		if err != nil {
			return err
		}

		session := game.NewSession(scenario, brain, game.RulesFromConfig(cfg.Game))
		console := terminal.NewConsole(os.Stdin, os.Stdout, terminal.Options{
			Plain:       plainFlag || cfg.Game.Plain,
			ClearScreen: cfg.Game.ClearScreen,
			WrapWidth:   cfg.Game.WrapWidth,
		})

		g := terminal.NewGame(console, session)
		if caseLog, closeDB := openCaseLog(); caseLog != nil {
			defer closeDB()
			g.WithRecorder(caseLog.Recorder())
		}

		return g.Run(ctx)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Current Configuration:\n")
		fmt.Printf("  LLM Provider: %s\n", cfg.LLM.Provider)
		fmt.Printf("  Gemini Models: %v\n", cfg.Gemini.Models)
		fmt.Printf("  Ollama Host: %s (model %s)\n", cfg.Ollama.Host, cfg.Ollama.Model)
		fmt.Printf("  Matcher: %s, threshold %.2f, keyword bonus %.1f, cache %s\n",
			cfg.Matcher.Embedder, cfg.Matcher.Threshold, cfg.Matcher.KeywordBonus, cfg.Matcher.Cache)
		fmt.Printf("  Max Turns: %d\n", cfg.Game.MaxTurns)
		fmt.Printf("  Starting Willingness: %d\n", cfg.Game.StartingWillingness)
		fmt.Printf("  Generated Scenario: %s\n", cfg.Game.GeneratedPath)
		fmt.Printf("  Scenarios Dir: %s\n", cfg.Game.ScenariosDir)
		fmt.Printf("  Database: %s\n", cfg.Database.Path)
		fmt.Printf("  TTS: enabled=%t type=%s\n", cfg.Tts.Enabled, cfg.Tts.Type)
		fmt.Printf("  Log Level: %s\n", cfg.Log.Level)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&scenarioFlag, "scenario", "", "scenario file or library id (default is the generated case, then the built-in one)")
	playCmd.Flags().BoolVar(&plainFlag, "plain", false, "disable colors and screen clearing")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger.SetGlobalLevel(cfg.Log.Level)
	log = logger.New()
}

// loadScenario resolves --scenario, then game.scenario, then the last
// generated case, then the built-in one.
func loadScenario() (*game.Scenario, error) {
	choice := scenarioFlag
	if choice == "" {
		choice = cfg.Game.Scenario
	}

	if choice == "" {
		if _, err := os.Stat(cfg.Game.GeneratedPath); err == nil {
			choice = cfg.Game.GeneratedPath
		}
	}

	var (
		scenario *game.Scenario
		err      error
	)
	switch {
	case choice == "":
		scenario, err = game.DefaultScenario()
	case fileExists(choice):
		scenario, err = game.LoadScenario(choice)
	default:
		scenario, err = library().Load(choice)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("Loaded scenario: " + scenario.Meta.Title)
	return scenario, nil
}

func library() *game.Library {
	return game.NewLibrary(cfg.Game.ScenariosDir, cfg.Game.GeneratedPath)
}

func newBrain(ctx context.Context) (*dialogue.Brain, error) {
	embedder, err := embedding.NewEmbedder(ctx, cfg, dialogue.KeepWords())
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	log.Debug("Using embedder " + embedder.Name())

	return dialogue.NewBrainFromConfig(cfg, embedder, rand.New(rand.NewSource(time.Now().UnixNano()))), nil
}

// openCaseLog returns nil when the database cannot be opened; the game is
// still playable without it.
func openCaseLog() (*services.CaseLog, func()) {
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Warn("Case log unavailable, this case will not be recorded")
		return nil, func() {}
	}
	return services.NewCaseLog(db), func() { db.Close() }
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func main() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(narrateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Command execution failed")
		stop()
		os.Exit(1)
	}
}
