package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// templatesCmd groups template inspection commands
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect available document templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered template categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		for _, category := range registry.Categories() {
			t, err := registry.Get(category)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s %s (%d control points)\n", category, t.Name, len(t.ControlPoints))
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Show the control points of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		t, err := registry.Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s\n\n", t.Name, t.Description)
		for i, cp := range t.ControlPoints {
			fmt.Printf("%2d. %s [%s]\n", i+1, cp.Name, cp.Criticity)
			fmt.Printf("    %s\n", cp.Description)
			if len(cp.Synonyms) > 0 {
				fmt.Printf("    synonyms: %v\n", cp.Synonyms)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)

	templatesCmd.PersistentFlags().StringVar(&templatesDir, "templates-dir", "", "directory of extra YAML template definitions")
}
