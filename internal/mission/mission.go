// Package mission implements the shared session controller behind the
// "5 timed problems" game modes. A game module supplies a problem
// generator and a storage key prefix; the engine sequences the run,
// enforces the input and timing rules, and settles the best record for
// the chosen difficulty level.
package mission

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NicolaLanata/math-arcade/internal/kvstore"
	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/progress"
)

// Delays between a submission and the next input opportunity, and the
// cadence of display refreshes. The recorded elapsed time never depends
// on these; it is always the difference of two captured instants.
const (
	AdvanceDelay = 320 * time.Millisecond
	RetryDelay   = 480 * time.Millisecond
	TickInterval = 100 * time.Millisecond
)

const maxInputDigits = 5

// Problem is one generated exercise.
type Problem struct {
	Text   string
	Answer int
}

// Generator produces the next problem for a difficulty level (1-3).
type Generator func(level int) Problem

// Config wires a game module into the engine. A missing generator or
// storage prefix is a programming error and fails construction hard;
// everything downstream assumes the contract holds.
type Config struct {
	Generate      Generator
	StoragePrefix string
	Title         string
}

// Screen is the engine's top-level state.
type Screen int

const (
	ScreenLevelSelect Screen = iota
	ScreenRun
	ScreenEnd
)

// Scheduler defers a continuation by a fixed delay, returning a cancel
// function. The engine keeps at most one continuation pending; starting
// a new mission cancels it.
type Scheduler interface {
	After(d time.Duration, f func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// ResultSink receives the outcome of a finished run. The progress
// tracker satisfies this.
type ResultSink interface {
	RecordMissionResult(gameID string, res progress.MissionResult)
}

// Engine is one game session's state machine. It is single-threaded:
// all methods must be called from the host's event loop.
type Engine struct {
	cfg    Config
	store  kvstore.Store
	gameID string
	sink   ResultSink
	log    *zap.Logger

	now      func() time.Time
	sched    Scheduler
	nameFunc func() string

	runID   string
	screen  Screen
	level   int
	index   int
	correct int
	results [models.ProblemsPerMission]*bool
	current *Problem
	input   string
	locked  bool

	timerStarted bool
	startAt      time.Time
	endAt        time.Time
	ended        bool

	cancelPending func()

	lastLevel  int
	playerName string

	finished *Outcome
}

// Outcome summarizes a finished run for the host to render.
type Outcome struct {
	Attempt models.Attempt
	Best    *models.Attempt
	NewBest bool
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithScheduler injects the delay scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithPlayerName injects the player-name source captured at run start.
func WithPlayerName(f func() string) Option {
	return func(e *Engine) { e.nameFunc = f }
}

// WithResultSink injects the progress push target.
func WithResultSink(sink ResultSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// New validates the game module's configuration and builds an engine.
// store should be the player-scoped storage so best records land in the
// active player's namespace.
func New(cfg Config, store kvstore.Store, gameID string, log *zap.Logger, opts ...Option) (*Engine, error) {
	if cfg.Generate == nil {
		return nil, errors.New("mission config: generator required")
	}
	if cfg.StoragePrefix == "" {
		return nil, errors.New("mission config: storage prefix required")
	}
	if cfg.Title == "" {
		cfg.Title = "Mission"
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		cfg:       cfg,
		store:     store,
		gameID:    gameID,
		log:       log,
		now:       time.Now,
		sched:     timerScheduler{},
		screen:    ScreenLevelSelect,
		lastLevel: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Title returns the display title.
func (e *Engine) Title() string { return e.cfg.Title }

// Screen returns the current top-level state.
func (e *Engine) Screen() Screen { return e.screen }

// Level returns the current difficulty level.
func (e *Engine) Level() int { return e.level }

// LastLevel returns the most recently played level, for replay.
func (e *Engine) LastLevel() int { return e.lastLevel }

// Index returns the zero-based current problem slot.
func (e *Engine) Index() int { return e.index }

// Correct returns the running first-attempt correct count.
func (e *Engine) Correct() int { return e.correct }

// Results returns first-attempt correctness per slot; nil entries were
// never attempted.
func (e *Engine) Results() [models.ProblemsPerMission]*bool { return e.results }

// Current returns the problem on screen, or nil between problems.
func (e *Engine) Current() *Problem { return e.current }

// Input returns the typed answer buffer.
func (e *Engine) Input() string { return e.input }

// Locked reports whether input is being evaluated.
func (e *Engine) Locked() bool { return e.locked }

// Outcome returns the finished run's summary once the end screen is
// reached, nil before.
func (e *Engine) Outcome() *Outcome { return e.finished }

// RunID identifies the current run in logs.
func (e *Engine) RunID() string { return e.runID }

// Elapsed returns the display time for the run: zero before the first
// keystroke, frozen once the final problem is answered.
func (e *Engine) Elapsed() time.Duration {
	if !e.timerStarted {
		return 0
	}
	if e.ended {
		return e.endAt.Sub(e.startAt)
	}
	return e.now().Sub(e.startAt)
}

// BestKey returns the storage key of the best record for a level under
// this engine's prefix.
func (e *Engine) BestKey(level int) string {
	return BestKey(e.cfg.StoragePrefix, level)
}

// BestKey returns the best-record storage key for a prefix and level.
func BestKey(prefix string, level int) string {
	return fmt.Sprintf("%s_best_L%d", prefix, level)
}

// LoadBest reads the stored best attempt for a level, or nil if none
// or malformed.
func (e *Engine) LoadBest(level int) *models.Attempt {
	return LoadBest(e.store, e.cfg.StoragePrefix, level)
}

// LoadBest reads a best record through store. Missing or wrong-typed
// fields fail closed to nil; a missing name defaults.
func LoadBest(store kvstore.Store, prefix string, level int) *models.Attempt {
	raw, ok := store.Get(BestKey(prefix, level))
	if !ok {
		return nil
	}
	rec, err := decodeBest(raw)
	if err != nil {
		return nil
	}
	return rec
}

// StartMission resets all per-run state and begins a run at level.
func (e *Engine) StartMission(level int) error {
	if level < 1 || level > models.MissionLevels {
		return fmt.Errorf("mission level out of range: %d", level)
	}

	if e.cancelPending != nil {
		e.cancelPending()
		e.cancelPending = nil
	}

	e.runID = uuid.New().String()
	e.level = level
	e.lastLevel = level
	e.index = 0
	e.correct = 0
	e.results = [models.ProblemsPerMission]*bool{}
	e.current = nil
	e.input = ""
	e.locked = false
	e.timerStarted = false
	e.ended = false
	e.finished = nil

	e.playerName = models.DefaultPlayerName
	if e.nameFunc != nil {
		e.playerName = normalizeName(e.nameFunc())
	}

	e.screen = ScreenRun
	e.log.Debug("mission started",
		zap.String("runId", e.runID),
		zap.String("prefix", e.cfg.StoragePrefix),
		zap.Int("level", level))
	return e.nextProblem()
}

// ShowLevels returns to level selection.
func (e *Engine) ShowLevels() {
	e.screen = ScreenLevelSelect
}

// Replay starts a new run at the last played level.
func (e *Engine) Replay() error {
	return e.StartMission(e.lastLevel)
}

// PressKey feeds one key event: a digit, "back", or "ok". Digits arm
// the run timer; backspace does not.
func (e *Engine) PressKey(k string) error {
	if e.screen != ScreenRun || e.locked {
		return nil
	}

	switch {
	case k == "ok":
		return e.Submit()
	case k == "back":
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
		return nil
	case len(k) == 1 && k[0] >= '0' && k[0] <= '9':
		e.startTimerIfNeeded()
		if len(e.input) >= maxInputDigits {
			return nil
		}
		if e.input == "0" {
			e.input = ""
		}
		e.input += k
		return nil
	default:
		return nil
	}
}

// Submit evaluates the typed answer against the current problem.
func (e *Engine) Submit() error {
	if e.locked || e.current == nil || e.input == "" {
		return nil
	}

	e.startTimerIfNeeded()
	e.locked = true

	given, err := strconv.Atoi(e.input)
	ok := err == nil && given == e.current.Answer

	if ok {
		// Only the first attempt at a slot counts toward the score.
		if e.results[e.index] == nil {
			v := true
			e.results[e.index] = &v
			e.correct++
		}

		if e.index == models.ProblemsPerMission-1 {
			e.stopTimer()
		}

		e.schedule(AdvanceDelay, func() {
			e.index++
			if err := e.nextProblem(); err != nil {
				e.log.Error("mission generator failed mid-run", zap.Error(err))
			}
		})
		return nil
	}

	if e.results[e.index] == nil {
		v := false
		e.results[e.index] = &v
	}

	e.schedule(RetryDelay, func() {
		e.locked = false
		e.input = ""
	})
	return nil
}

func (e *Engine) schedule(d time.Duration, f func()) {
	if e.cancelPending != nil {
		e.cancelPending()
	}
	e.cancelPending = e.sched.After(d, func() {
		e.cancelPending = nil
		f()
	})
}

func (e *Engine) startTimerIfNeeded() {
	if e.timerStarted {
		return
	}
	e.timerStarted = true
	e.startAt = e.now()
}

func (e *Engine) stopTimer() {
	if !e.timerStarted || e.ended {
		return
	}
	e.endAt = e.now()
	e.ended = true
}

func (e *Engine) nextProblem() error {
	e.locked = false
	e.input = ""

	if e.index >= models.ProblemsPerMission {
		e.finish()
		return nil
	}

	p := e.cfg.Generate(e.level)
	if p.Text == "" {
		return errors.New("mission generator returned empty problem text")
	}
	e.current = &p
	return nil
}

func (e *Engine) finish() {
	e.stopTimer()
	var totalMs int64
	if e.timerStarted {
		totalMs = e.endAt.Sub(e.startAt).Milliseconds()
	}

	attempt := models.Attempt{
		Name:    e.playerName,
		Correct: e.correct,
		TimeMs:  totalMs,
	}

	prev := e.LoadBest(e.level)
	newBest := attempt.Better(prev)
	if newBest {
		e.saveBest(e.level, attempt)
	}

	e.finished = &Outcome{
		Attempt: attempt,
		Best:    e.LoadBest(e.level),
		NewBest: newBest,
	}

	if e.sink != nil && e.gameID != "" {
		e.sink.RecordMissionResult(e.gameID, progress.MissionResult{
			Correct: e.correct,
			Total:   models.ProblemsPerMission,
			TimeMs:  totalMs,
		})
	}

	e.screen = ScreenEnd
	e.log.Info("mission finished",
		zap.String("runId", e.runID),
		zap.Int("level", e.level),
		zap.Int("correct", e.correct),
		zap.Int64("timeMs", totalMs),
		zap.Bool("newBest", newBest))
}
