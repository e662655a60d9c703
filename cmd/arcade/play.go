package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/mission"
	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

// missionGame wires one playable mission mode: its catalog identity,
// its legacy storage prefix, and its problem generator.
type missionGame struct {
	gameID string
	prefix string
	title  string
	gen    mission.Generator
}

var missionGames = map[string]missionGame{
	"sum": {
		gameID: "sum_mission",
		prefix: "mathArcade_sumMission",
		title:  "Sum Mission",
		gen:    sumProblem,
	},
	"subtraction": {
		gameID: "subtraction_mission",
		prefix: "mathArcade_subMission",
		title:  "Subtraction Mission",
		gen:    subtractionProblem,
	},
	"multiplication": {
		gameID: "multiplication_mission",
		prefix: "mathArcade_multMission",
		title:  "Multiplication Mission",
		gen:    multiplicationProblem,
	},
}

func sumProblem(level int) mission.Problem {
	var a, b int
	switch level {
	case 1:
		a, b = 1+rand.Intn(9), 1+rand.Intn(9)
	case 2:
		a, b = 10+rand.Intn(40), 10+rand.Intn(40)
	default:
		a, b = 50+rand.Intn(150), 50+rand.Intn(150)
	}
	return mission.Problem{Text: fmt.Sprintf("%d + %d = ?", a, b), Answer: a + b}
}

func subtractionProblem(level int) mission.Problem {
	var a, b int
	switch level {
	case 1:
		a = 2 + rand.Intn(17)
		b = rand.Intn(a)
	case 2:
		a = 20 + rand.Intn(79)
		b = rand.Intn(a)
	default:
		a = 100 + rand.Intn(400)
		b = rand.Intn(a)
	}
	return mission.Problem{Text: fmt.Sprintf("%d − %d = ?", a, b), Answer: a - b}
}

func multiplicationProblem(level int) mission.Problem {
	var a, b int
	switch level {
	case 1:
		a, b = 2+rand.Intn(4), 1+rand.Intn(10)
	case 2:
		a, b = 2+rand.Intn(8), 2+rand.Intn(8)
	default:
		a, b = 11+rand.Intn(9), 2+rand.Intn(8)
	}
	return mission.Problem{Text: fmt.Sprintf("%d × %d = ?", a, b), Answer: a * b}
}

// sleepScheduler runs deferred continuations inline after the real
// delay, keeping the CLI single-threaded like the engine expects.
type sleepScheduler struct{}

func (sleepScheduler) After(d time.Duration, f func()) func() {
	time.Sleep(d)
	f()
	return func() {}
}

func newPlayCmd() *cobra.Command {
	var level int

	cmd := &cobra.Command{
		Use:   "play <sum|subtraction|multiplication>",
		Short: "Play a timed 5-problem mission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, ok := missionGames[args[0]]
			if !ok {
				return fmt.Errorf("unknown mission %q (choices: %s)", args[0], strings.Join(missionGameNames(), ", "))
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			eng, err := mission.New(
				mission.Config{Generate: game.gen, StoragePrefix: game.prefix, Title: game.title},
				a.scoped,
				game.gameID,
				a.log,
				mission.WithScheduler(sleepScheduler{}),
				mission.WithResultSink(a.tracker),
				mission.WithPlayerName(func() string {
					if u := a.profiles.ActiveUser(); u != nil {
						return u.Name
					}
					return mission.LoadStoredName(a.scoped)
				}),
			)
			if err != nil {
				return err
			}

			return runMission(cmd, a, eng, game, level)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 0, "difficulty level 1-3 (prompts when unset)")
	return cmd
}

func missionGameNames() []string {
	names := make([]string, 0, len(missionGames))
	for n := range missionGames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func runMission(cmd *cobra.Command, a *app, eng *mission.Engine, game missionGame, level int) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, ui.Title.Render(eng.Title()))
	if u := a.profiles.ActiveUser(); u != nil {
		fmt.Fprintf(out, "Player: %s %s\n", u.Avatar, u.Name)
	} else {
		fmt.Fprintln(out, ui.Muted.Render("No active player — progress will not be tracked per player."))
	}

	for {
		if level < 1 || level > models.MissionLevels {
			level = promptLevel(out, in, eng)
			if level == 0 {
				return nil
			}
		}

		a.tracker.RecordGameLaunch(game.gameID)
		if err := eng.StartMission(level); err != nil {
			return err
		}

		if err := runProblems(out, in, eng); err != nil {
			return err
		}

		outcome := eng.Outcome()
		fmt.Fprintf(out, "\n%s %d/%d correct • %s\n", ui.IconTimer,
			outcome.Attempt.Correct, models.ProblemsPerMission, models.FormatClock(outcome.Attempt.TimeMs))
		if outcome.NewBest {
			fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" New best! "+mission.RecordText(outcome.Best)))
		} else {
			fmt.Fprintln(out, ui.Muted.Render(mission.RecordText(outcome.Best)))
		}

		fmt.Fprint(out, "\n[a]gain, [l]evel select, [q]uit? ")
		if !in.Scan() {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "a":
			// Same level again.
		case "l":
			eng.ShowLevels()
			level = 0
		default:
			return nil
		}
	}
}

func promptLevel(out io.Writer, in *bufio.Scanner, eng *mission.Engine) int {
	fmt.Fprintln(out, "\nChoose a level:")
	for lvl := 1; lvl <= models.MissionLevels; lvl++ {
		fmt.Fprintf(out, "  %d) %s\n", lvl, mission.RecordText(eng.LoadBest(lvl)))
	}
	fmt.Fprint(out, "Level (1-3, q quits): ")
	for in.Scan() {
		t := strings.TrimSpace(in.Text())
		if strings.EqualFold(t, "q") {
			return 0
		}
		if lvl, err := strconv.Atoi(t); err == nil && lvl >= 1 && lvl <= models.MissionLevels {
			return lvl
		}
		fmt.Fprint(out, "Level (1-3, q quits): ")
	}
	return 0
}

func runProblems(out io.Writer, in *bufio.Scanner, eng *mission.Engine) error {
	for eng.Screen() == mission.ScreenRun {
		p := eng.Current()
		if p == nil {
			continue
		}
		fmt.Fprintf(out, "\nProblem %d/%d: %s\n", eng.Index()+1, models.ProblemsPerMission, ui.H2.Render(p.Text))
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return nil
		}

		digits := strings.TrimSpace(in.Text())
		if digits == "" {
			continue
		}

		for _, r := range digits {
			if err := eng.PressKey(string(r)); err != nil {
				return err
			}
		}
		if eng.Input() == "" {
			// Nothing valid typed (e.g. letters); re-prompt.
			continue
		}

		// The engine judges the digit-filtered, length-capped buffer,
		// which can differ from the raw line. Its slot advance is the
		// verdict.
		slot := eng.Index()
		if err := eng.PressKey("ok"); err != nil {
			return err
		}

		if eng.Index() > slot {
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" Correct!"))
		} else {
			fmt.Fprintln(out, ui.Bad.Render(ui.IconCross+" Try again."))
		}
	}
	return nil
}
