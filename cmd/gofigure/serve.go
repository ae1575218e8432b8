package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/tahcohcat/gofigure-interrogation/internal/api"
	"github.com/tahcohcat/gofigure-interrogation/internal/auth"
	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/tts"
	"github.com/tahcohcat/gofigure-interrogation/internal/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		brain, err := newBrain(ctx)
		if err != nil {
			return err
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)

		games := api.NewGameHandler(library(), brain, game.RulesFromConfig(cfg.Game)).
			WithPublisher(hub.Publish)

		if caseLog, closeDB := openCaseLog(); caseLog != nil {
			defer closeDB()
			games.WithRecorder(caseLog.Recorder()).WithCases(caseLog)
		}

		synth := tts.New(ctx, cfg.Tts)
		if closer, ok := synth.(interface{ Close() error }); ok {
			defer closer.Close()
		}

		a := auth.New(cfg.Server)
		if !a.Enabled() {
			log.Warn("server.password_hash is empty, the API is open to anyone who can reach it")
		}

		server := &http.Server{
			Addr: ":" + cfg.Server.Port,
			Handler: api.Server{
				Games:          games,
				Speak:          api.NewSpeakHandler(synth, games, cfg.Tts.NarratorVoice),
				Auth:           a,
				Events:         hub,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			}.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info(fmt.Sprintf("🎭 GoFigure server starting on port %s", cfg.Server.Port))
			log.Info(fmt.Sprintf("🗄️ Database: %s", cfg.Database.Path))
			log.Info(fmt.Sprintf("🔊 TTS: %s", synth.Name()))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
			log.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	},
}
