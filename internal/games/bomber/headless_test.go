package bomber

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
)

func TestRunHeadless(t *testing.T) {
	cfg := config.DefaultBomberConfig()

	a, err := RunHeadless(context.Background(), cfg, 11, 3000)
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if a.Ticks <= 0 || a.Ticks > 3000 {
		t.Errorf("Ticks = %d, expected 1..3000", a.Ticks)
	}
	if a.TimedOut && a.Winner != core.PlayerNone {
		t.Errorf("Winner = %v on timeout, expected none", a.Winner)
	}
	if a.Seed != 11 {
		t.Errorf("Seed = %d, expected 11", a.Seed)
	}

	b, err := RunHeadless(context.Background(), cfg, 11, 3000)
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if a != b {
		t.Errorf("RunHeadless() = %+v then %+v, expected identical outcomes", a, b)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunHeadless(ctx, config.DefaultBomberConfig(), 1, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunHeadless() error = %v, expected context.Canceled", err)
	}
}

func TestRunHeadlessInvalidConfig(t *testing.T) {
	cfg := config.DefaultBomberConfig()
	cfg.Arena.Width = 24

	if _, err := RunHeadless(context.Background(), cfg, 1, 10); err == nil {
		t.Error("RunHeadless() with an even width succeeded, expected an error")
	}
}
