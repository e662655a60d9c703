package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicolaLanata/math-arcade/internal/models"
	"github.com/NicolaLanata/math-arcade/internal/ui"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage player profiles",
	}

	cmd.AddCommand(
		newPlayerListCmd(),
		newPlayerCreateCmd(),
		newPlayerSwitchCmd(),
		newPlayerDeleteCmd(),
		newPlayerAvatarCmd(),
	)
	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			users := a.profiles.UsersSorted()
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No players yet. Create one with: arcade player create <name>"))
				return nil
			}

			activeID := a.profiles.ActiveUserID()
			for _, u := range users {
				line := fmt.Sprintf("%s %s (%s)", u.Avatar, u.Name, u.ID)
				if u.ID == activeID {
					line = ui.Good.Render(line + " ← active")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newPlayerCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a player (or switch to it) and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			u := a.profiles.SwitchOrCreateByName(strings.Join(args, " "))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now the active player.\n", u.Avatar, ui.Title.Render(u.Name))
			return nil
		},
	}
}

func newPlayerSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Switch the active player by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			u, ok := a.profiles.SwitchByID(args[0])
			if !ok {
				return fmt.Errorf("no player with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now the active player.\n", u.Avatar, ui.Title.Render(u.Name))
			return nil
		},
	}
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player and all of their saved progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !passParentalGate(cmd) {
				return errors.New("parental gate not passed")
			}

			res := a.profiles.DeleteByID(args[0])
			if !res.OK {
				return fmt.Errorf("no player with id %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted player. Removed %d saved item%s.\n", res.RemovedKeys, plural(res.RemovedKeys))
			if current := a.profiles.ActiveUser(); current != nil {
				fmt.Fprintf(out, "Active player is now %s %s.\n", current.Avatar, current.Name)
			} else {
				fmt.Fprintln(out, ui.Muted.Render("No active player."))
			}
			return nil
		},
	}
}

func newPlayerAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar [glyph]",
		Short: "Show avatar choices or set the active player's avatar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Choices:", strings.Join(models.AvatarOptions, " "))
				return nil
			}

			if !models.IsAvatar(args[0]) {
				return fmt.Errorf("unknown avatar %q, choices: %s", args[0], strings.Join(models.AvatarOptions, " "))
			}
			if a.profiles.ActiveUser() == nil {
				return errors.New("no active player")
			}
			a.profiles.SetActiveAvatar(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Avatar set to %s.\n", args[0])
			return nil
		},
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
