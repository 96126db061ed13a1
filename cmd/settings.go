package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	RunE:  showSettings,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current preferences",
	RunE:  showSettings,
}

func showSettings(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	printSettings(e.prefs.Get())
	return nil
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference (keys: " + strings.Join(settings.Keys(), ", ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := e.prefs.Set(commandContext(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		printSettings(s)
		return nil
	},
}

func printSettings(s settings.Settings) {
	fmt.Printf("%-22s %s\n", "aiModel", s.AIModel)
	fmt.Printf("%-22s %v\n", "generateImages", s.GenerateImages)
	fmt.Printf("%-22s %s\n", "theme", s.Theme)
	fmt.Printf("%-22s %s\n", "chatPosition", s.ChatPosition)
	fmt.Printf("%-22s %v\n", "isChatFloating", s.IsChatFloating)
	fmt.Printf("%-22s %v\n", "isChatPinned", s.IsChatPinned)
	fmt.Printf("%-22s %v\n", "isChatCollapsed", s.IsChatCollapsed)
	fmt.Printf("%-22s %v\n", "closeChatOnSuggestion", s.CloseChatOnSuggestion)
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
