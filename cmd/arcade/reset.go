package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/ui"
)

// passParentalGate asks a quick grown-up arithmetic check on stdin and
// returns whether it was answered correctly.
func passParentalGate(cmd *cobra.Command) bool {
	a := 12 + rand.Intn(38)
	b := 12 + rand.Intn(38)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.IconLock+" Grown-ups only! Solve to continue.")
	fmt.Fprintf(out, "What is %d + %d? ", a, b)

	in := bufio.NewScanner(cmd.InOrStdin())
	if !in.Scan() {
		return false
	}
	got, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil || got != a+b {
		fmt.Fprintln(out, ui.Bad.Render("That's not it. Nothing was changed."))
		return false
	}
	return true
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase the active player's progress and records",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			u := a.profiles.ActiveUser()
			if u == nil {
				return fmt.Errorf("no active player to reset")
			}

			if !passParentalGate(cmd) {
				return nil
			}

			removed := a.profiles.ResetActiveProgress()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Fresh start for %s %s (%d stored record%s cleared).\n",
				ui.IconCheck, u.Avatar, u.Name, removed, plural(removed))
			return nil
		},
	}
}
