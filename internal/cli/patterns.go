package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/veritas/internal/catalog"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [category]",
	Short: "List detection rules, optionally for one category",
	Long: `List the rules in the active catalog: the built-in rules plus any rule
packs. Categories: shell, code, file_operation, network, system,
prompt_injection, data_exfiltration, social_engineering,
identity_manipulation, api_harvesting, privilege_escalation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: patternsCommand,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func patternsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	cat := engine.Catalog()

	groups := cat.All()
	if len(args) == 1 {
		c, err := catalog.ParseCategory(args[0])
		if err != nil {
			return err
		}
		rules, err := cat.Rules(c)
		if err != nil {
			return err
		}
		groups = []catalog.CategoryRules{{Category: c, Rules: rules}}
	}

	out := cmd.OutOrStdout()
	table := newTable(out, []string{"Category", "Severity", "Pattern", "Description"})
	total := 0
	for _, g := range groups {
		for _, r := range g.Rules {
			table.Append([]string{g.Category.String(), severityLabel(r.Severity), r.Pattern, r.Description})
			total++
		}
	}
	table.Render()
	fmt.Fprintf(out, "\n%d rules in %d categories\n", total, len(groups))
	return nil
}
