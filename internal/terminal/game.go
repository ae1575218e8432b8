package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tahcohcat/gofigure-interrogation/internal/game"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// errQuit ends the game without a verdict.
var errQuit = errors.New("player quit")

// Game drives a session from the console.
type Game struct {
	console  *Console
	session  *game.Session
	recorder func(game.Summary)
	logger   *logger.Log
}

func NewGame(console *Console, session *game.Session) *Game {
	return &Game{
		console: console,
		session: session,
		logger:  logger.New(),
	}
}

// WithRecorder registers fn to receive the finished case.
func (g *Game) WithRecorder(fn func(game.Summary)) *Game {
	g.recorder = fn
	return g
}

// Run plays until the case is closed, input ends or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	err := g.play(ctx)

	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, errQuit) {
		g.quit()
		err = nil
	}

	if g.recorder != nil && !g.session.Active() {
		g.recorder(g.session.Summary())
	}
	return err
}

func (g *Game) play(ctx context.Context) error {
	if err := g.intro(ctx); err != nil {
		return err
	}

	for g.session.Active() {
		if err := g.menu(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) intro(ctx context.Context) error {
	sc := g.session.Scenario

	g.console.Clear()
	g.console.Panel(strings.ToUpper(sc.Meta.Title), sc.Meta.IntroText)
	g.console.Blank()

	return g.console.WaitForEnter(ctx, "Press Enter to begin the investigation...")
}

func (g *Game) menu(ctx context.Context) error {
	c := g.console
	sc := g.session.Scenario

	c.Clear()
	c.Println(c.Status(g.statusLine()))
	c.Blank()
	c.Println(c.Title("SUSPECT LIST:"))
	for i, s := range sc.Suspects {
		c.Println(fmt.Sprintf("%d. %s %s", i+1, s.Name, c.Dim(fmt.Sprintf("(willingness %d)", s.Willingness))))
	}
	c.Blank()
	c.Println("Type number to talk, 'accuse' to solve, 'exit' to quit.")

	input, err := c.Prompt(ctx, "> ")
	if err != nil {
		return err
	}

	switch strings.ToLower(input) {
	case "":
		return nil
	case "exit", "quit":
		return errQuit
	case "accuse":
		return g.accuse(ctx)
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(sc.Suspects) {
			c.Println(c.Failure("Invalid number."))
			return c.WaitForEnter(ctx, "Press Enter to continue...")
		}
		return g.interrogate(ctx, sc.Suspects[n-1])
	}

	if s := sc.FindSuspect(input); s != nil {
		return g.interrogate(ctx, s)
	}

	c.Println(c.Failure("Invalid input."))
	return c.WaitForEnter(ctx, "Press Enter to continue...")
}

func (g *Game) interrogate(ctx context.Context, suspect *game.Suspect) error {
	c := g.console

	c.Clear()
	c.Panel("Interrogating: "+suspect.Name, "")
	c.Println(c.Dim(suspect.Bio))
	c.Println(c.Dim("Type 'back' to return."))
	c.Blank()

	for {
		question, err := c.Prompt(ctx, "You: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(question) {
		case "":
			continue
		case "back", "return", "exit":
			return nil
		}

		reply, err := g.session.Ask(ctx, suspect.ID, question)
		if errors.Is(err, game.ErrGameOver) {
			return nil
		}
		if err != nil {
			g.logger.WithError(err).Error("Failed to question suspect")
			continue
		}

		c.Println(fmt.Sprintf("%s %s", c.Speaker(suspect.Name+":"), reply.Text))
		c.Blank()

		if !g.session.Active() {
			c.Println(c.Failure("TIME IS UP!"))
			c.Println(g.session.Outcome())
			c.Println(c.Status(g.statusLine()))
			return nil
		}
	}
}

func (g *Game) accuse(ctx context.Context) error {
	c := g.console

	c.Blank()
	c.Println(c.Failure("WHO IS THE KILLER?"))

	name, err := c.Prompt(ctx, "Type the name: ")
	if err != nil {
		return err
	}

	verdict, err := g.session.Accuse(name)
	if err != nil {
		return err
	}

	c.Blank()
	if verdict.Correct {
		c.Println(c.Success(fmt.Sprintf("CORRECT! %s is guilty!", verdict.Killer)))
		c.Println(verdict.Outcome)
		c.Println("Motive: " + verdict.Motive)
		if verdict.Weapon != "" {
			c.Println("Weapon: " + verdict.Weapon)
		}
	} else {
		c.Println(c.Failure("WRONG! The killer got away..."))
		c.Println(verdict.Outcome)
		c.Println(c.Dim("The killer was " + verdict.Killer + "."))
	}
	c.Println(c.Status(fmt.Sprintf("Final score: %d", verdict.Score)))

	return nil
}

func (g *Game) quit() {
	if !g.session.Active() {
		return
	}
	g.session.Abandon()
	g.console.Blank()
	g.console.Println(g.session.Outcome())
}

func (g *Game) statusLine() string {
	left := g.session.TurnsLeft()
	turns := "unlimited"
	if left >= 0 {
		turns = strconv.Itoa(left)
	}
	return fmt.Sprintf("Turns left: %s | Score: %d", turns, g.session.Snapshot().Score)
}
