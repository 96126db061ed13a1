package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/app"
	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved lesson plans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		filter, _ := cmd.Flags().GetString("filter")
		f := app.Filter(filter)
		switch f {
		case app.FilterAll, app.FilterDraft, app.FilterPublished:
		default:
			return fmt.Errorf("unknown filter %q (all, draft, published)", filter)
		}

		plans := e.controller(nil, nil).Lessons(f)
		if len(plans) == 0 {
			fmt.Println("אין עדיין מערכי שיעור.")
			return nil
		}
		fmt.Println(render.List(plans, e.styles()))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved lesson plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctl := e.controller(nil, nil)
		if err := ctl.Select(args[0]); err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		fmt.Println(render.Plan(ctl.Current(), e.styles(), width))
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Mark a lesson plan as published",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.controller(nil, nil).Publish(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", p.ID, p.Status)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lesson plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var confirm app.Confirmer = app.ConfirmFunc(promptYesNo)
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			confirm = nil
		}

		err = e.controller(nil, confirm).Delete(commandContext(cmd), args[0])
		switch {
		case errors.Is(err, app.ErrNotConfirmed):
			fmt.Println("בוטל.")
			return nil
		case errors.Is(err, lesson.ErrPlanNotFound):
			return fmt.Errorf("lesson plan %s not found", args[0])
		case err != nil:
			return err
		}
		fmt.Println("נמחק.")
		return nil
	},
}

// promptYesNo asks on stdin. Anything but y/yes/כן declines.
func promptYesNo(_ context.Context, message string) (bool, error) {
	fmt.Printf("%s [y/N] ", message)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "כן":
		return true, nil
	}
	return false, nil
}

func init() {
	listCmd.Flags().String("filter", string(app.FilterAll), "Status filter: all, draft or published")
	showCmd.Flags().Int("width", 100, "Render width in columns")
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}
