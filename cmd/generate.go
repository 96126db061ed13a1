package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/lesson"
	"github.com/abhisek/lessoncraft/internal/ui/loader"
	"github.com/abhisek/lessoncraft/internal/ui/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson plan (or regenerate one with --id)",
	Example: `  lessoncraft generate --category מדעים --unit-topic "מחזור המים" --grade "חטיבת ביניים" --duration 45
  lessoncraft generate --category Science --unit-topic Plants --grade "כיתות ה-ו" --topic Photosynthesis --file notes.pdf
  lessoncraft generate --id lesson-0192... --tone "מעורר השראה"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := commandContext(cmd)

		form, err := formFromFlags(cmd, e)
		if err != nil {
			return userError(err)
		}

		svc := e.planner()
		ctl := e.controller(svc, nil)

		opts := ctl.Begin()
		if cmd.Flags().Changed("model") {
			opts.Model, _ = cmd.Flags().GetString("model")
		}
		if cmd.Flags().Changed("images") {
			opts.Images, _ = cmd.Flags().GetBool("images")
		}

		var plan *lesson.Plan
		if isTerminal() {
			svc.Start(ctx, form, opts)
			plan, err = loader.Run(svc, e.styles())
		} else {
			plan, err = svc.Generate(ctx, form, opts)
		}
		if _, err := ctl.Finish(ctx, form, plan, err); err != nil {
			return errors.New(ctl.Error())
		}

		fmt.Println(render.Plan(ctl.Current(), e.styles(), 100))
		return nil
	},
}

// userError replaces err with its user-facing Hebrew text.
func userError(err error) error {
	return errors.New(lesson.UserMessage(err))
}

func init() {
	addFormFlags(generateCmd)
	generateCmd.Flags().String("id", "", "Regenerate the stored plan with this id in place")
	generateCmd.Flags().String("file", "", "Attach a PDF, DOCX or text file; the plan is derived from it alone")
	generateCmd.Flags().String("model", "", "Model tier (fast, pro) or provider model id; default from settings")
	generateCmd.Flags().Bool("images", false, "Generate illustrations for image screens; default from settings")
}
