package main

import (
	"fmt"

	"github.com/blog-content-api/internal/models"
	"github.com/spf13/cobra"
)

// NewPrefsCommand creates the prefs command group
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change local reader preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			printPreferences(cmd.OutOrStdout(), s.app.Services.Preference.Get(cmd.Context(), s.clientID))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "theme [light|dark|system|reset]",
		Short:     "Show, set or reset the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark), string(models.ThemeSystem), "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			prefs := s.app.Services.Preference
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), prefs.GetTheme(cmd.Context(), s.clientID, models.ThemeSystem))
				return nil
			}
			if args[0] == "reset" {
				if err := prefs.Delete(cmd.Context(), s.clientID, models.PreferenceTheme); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s theme reset\n", okColor("✓"))
				return nil
			}
			if err := prefs.SetTheme(cmd.Context(), s.clientID, models.Theme(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s theme set to %s\n", okColor("✓"), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "newsletter [dismiss|reset]",
		Short: "Show or change whether the newsletter prompt was dismissed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			prefs := s.app.Services.Preference
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), prefs.GetNewsletterDismissed(cmd.Context(), s.clientID, false))
				return nil
			}

			switch args[0] {
			case "dismiss":
				if err := prefs.SetNewsletterDismissed(cmd.Context(), s.clientID, true); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s newsletter dismissed: true\n", okColor("✓"))
			case "reset":
				if err := prefs.Delete(cmd.Context(), s.clientID, models.PreferenceNewsletterDismissed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s newsletter prompt reset\n", okColor("✓"))
			default:
				return fmt.Errorf("unknown action %q (use dismiss or reset)", args[0])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.app.Services.Preference.Clear(cmd.Context(), s.clientID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s preferences cleared\n", okColor("✓"))
			return nil
		},
	})

	return cmd
}
