package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/lesson"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill the remaining form fields from the unit topic and grade",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		form, err := formFromFlags(cmd, e)
		if err != nil {
			return userError(err)
		}
		patch, err := e.assist().Autofill(commandContext(cmd), form)
		if err != nil {
			return userError(err)
		}
		lesson.MergeForm(form, patch)
		printForm(form)
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:       "suggest <field>",
	Short:     "Suggest values for one form field",
	Args:      cobra.ExactArgs(1),
	ValidArgs: fieldNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		form, err := formFromFlags(cmd, e)
		if err != nil {
			return userError(err)
		}
		field := lesson.Field(args[0])
		values, err := e.assist().Suggest(commandContext(cmd), field, form)
		if err != nil {
			return userError(err)
		}

		fmt.Println(field.Label())
		for i, v := range values {
			fmt.Printf("%d. %s\n", i+1, v)
		}

		pick, _ := cmd.Flags().GetInt("pick")
		if pick < 1 || pick > len(values) {
			return nil
		}
		if err := lesson.ApplySuggestion(form, field, values[pick-1]); err != nil {
			return userError(err)
		}
		fmt.Println()
		fmt.Printf("%s: %s\n", field.Label(), field.Value(form))
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the lesson assistant a question about the current form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		form, err := formFromFlags(cmd, e)
		if err != nil {
			return userError(err)
		}
		reply, err := e.assist().Chat(commandContext(cmd), strings.Join(args, " "), form)
		if err != nil {
			return userError(err)
		}

		fmt.Println(reply.Text)
		if s := reply.Suggestions; s != nil {
			fmt.Println()
			fmt.Printf("הצעות עבור %s (%s):\n", s.FieldName, s.Field)
			for _, v := range s.Values {
				fmt.Println("- " + v)
			}
		}
		return nil
	},
}

// printForm prints every non-empty form field as "flag: value".
func printForm(form *lesson.FormData) {
	for _, ff := range formFlags {
		if v := strings.TrimSpace(*ff.field(form)); v != "" {
			fmt.Printf("%s: %s\n", ff.name, v)
		}
	}
	for _, name := range lesson.PartNames {
		part := form.Part(name)
		if part.Content != "" {
			fmt.Printf("%s-content: %s\n", name, part.Content)
		}
		if part.SpaceUsage != "" {
			fmt.Printf("%s-space: %s\n", name, part.SpaceUsage)
		}
		for _, s := range part.Screens {
			fmt.Printf("%s-screen: %s:%s\n", name, s.Type, s.Description)
		}
	}
}

func fieldNames() []string {
	names := make([]string, len(lesson.SuggestableFields))
	for i, f := range lesson.SuggestableFields {
		names[i] = string(f)
	}
	return names
}

func init() {
	for _, c := range []*cobra.Command{autofillCmd, suggestCmd, chatCmd} {
		addFormFlags(c)
		c.Flags().String("id", "", "Start from the stored plan with this id")
	}
	suggestCmd.Flags().Int("pick", 0, "Apply the n-th suggestion to the field and print the result")
}
