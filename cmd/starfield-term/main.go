package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"starfield-server/internal/clock"
	"starfield-server/internal/galaxy"
	"starfield-server/internal/lehmer"
	"starfield-server/internal/selection"
	"starfield-server/internal/shared/config"
	"starfield-server/internal/shared/logger"
	"starfield-server/internal/shared/utils"
	"starfield-server/internal/system"
	"starfield-server/internal/viewport"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "starfield-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Universe.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.GlobalConfig = cfg

	logFile, err := os.OpenFile(utils.GetEnv("STARFIELD_TERM_LOG", "starfield-term.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger.InitWithWriter(logFile)

	u := cfg.Universe
	generator, err := system.NewGenerator(u.Palette)
	if err != nil {
		return err
	}
	scanner, err := galaxy.NewScanner(generator, galaxy.Grid{Width: u.GridWidth, Height: u.GridHeight})
	if err != nil {
		return err
	}

	state := viewport.NewState(scanner, selection.NewResolver(generator), lehmer.NewWithNormalization(u.Normalization), u.PanSpeed)
	// Scan once so the first frame has stars before any step has run.
	state.Update(0)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	slog.Info("Terminal viewer started",
		"component", "starfield_term",
		"grid_width", u.GridWidth,
		"grid_height", u.GridHeight,
		"frame_time", u.FrameTime(),
	)

	v := newViewer(screen, state, clock.NewStepper(u.FrameTime()), u.GridWidth)
	v.loop(u.FrameTime())

	slog.Info("Terminal viewer stopped", "component", "starfield_term", "simulated", v.stepper.Elapsed())
	return nil
}

// keyHold is how long a direction stays held after its last key event.
// Terminals report key repeats but never releases.
const keyHold = 150 * time.Millisecond

type viewer struct {
	screen    tcell.Screen
	state     *viewport.State
	stepper   *clock.Stepper
	gridWidth int
	held      map[viewport.Direction]time.Time
}

func newViewer(screen tcell.Screen, state *viewport.State, stepper *clock.Stepper, gridWidth int) *viewer {
	return &viewer{
		screen:    screen,
		state:     state,
		stepper:   stepper,
		gridWidth: gridWidth,
		held:      make(map[viewport.Direction]time.Time),
	}
}

func (v *viewer) loop(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(v.screen, events, quit)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			v.release(now)
			if v.stepper.Advance(v.state.Update) > 0 {
				v.state.Clicked = false
			}
			draw(v.screen, v.state, v.gridWidth)
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or quit is
// closed. events is closed when the screen stops producing them.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// handle applies one input event. It returns false when the viewer should
// quit.
func (v *viewer) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}
		if dir, ok := direction(ev); ok {
			v.held[dir] = now
			v.state.Directions.Set(dir, true)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		v.state.Pointer = viewport.PointerFromPixels(float64(x)+0.5, float64(y)+0.5, 1)
		if ev.Buttons()&tcell.Button1 != 0 {
			v.state.Clicked = true
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// release lets go of directions whose key has not repeated recently.
func (v *viewer) release(now time.Time) {
	for dir, at := range v.held {
		if now.Sub(at) > keyHold {
			v.state.Directions.Set(dir, false)
			delete(v.held, dir)
		}
	}
}

func direction(ev *tcell.EventKey) (viewport.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return viewport.Up, true
	case tcell.KeyDown:
		return viewport.Down, true
	case tcell.KeyLeft:
		return viewport.Left, true
	case tcell.KeyRight:
		return viewport.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return viewport.Up, true
		case 's', 'S':
			return viewport.Down, true
		case 'a', 'A':
			return viewport.Left, true
		case 'd', 'D':
			return viewport.Right, true
		}
	}
	return 0, false
}
