package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mailtriage/internal/classifier"
	"github.com/csheth/mailtriage/internal/submission"
)

const healthTimeout = 5 * time.Second

func classifyJob(cycle *submission.Cycle) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		out := cycle.Run()
		var err error
		if out.State == submission.StateError {
			err = errors.New(out.Failure.String())
		}
		return cycleResultMsg{outcome: out}, err
	}
}

func healthJob(client classifier.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, healthTimeout)
		defer cancel()
		health, err := client.Health(ctx)
		return healthResultMsg{health: health, err: err}, err
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
