package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/indianpoker/internal/tui"
)

// WatchCmd plays one session live in the terminal.
type WatchCmd struct {
	Players  int           `kong:"default='6',env='INDIANPOKER_PLAYERS',help='Players at the table'"`
	Rounds   int           `kong:"default='100',env='INDIANPOKER_ROUNDS',help='Rounds to play'"`
	Seed     *int64        `kong:"env='INDIANPOKER_SEED',help='Deterministic RNG seed (optional)'"`
	Interval time.Duration `kong:"default='400ms',help='Delay between rounds'"`
	Debug    bool          `kong:"help='Write debug logs to watch.log'"`
}

func (c *WatchCmd) Run() error {
	// The TUI owns the terminal, so debug logs go to a file.
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	if c.Debug {
		f, err := os.OpenFile("watch.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{Level: log.DebugLevel})
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	return tui.Run(tui.Config{
		Players:  c.Players,
		Rounds:   c.Rounds,
		Seed:     seed,
		Interval: c.Interval,
	}, logger)
}
