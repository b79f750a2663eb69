package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/cli"
	"github.com/Veraticus/segregate/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the active classification rules",
		Long: `Print the incident rules, the waste type to container table and the
container state aliases in effect. Rules come from rules.path when set, otherwise
the built-in defaults are used.

Use --yaml to print a rules file that can be edited and pointed to by rules.path.`,
		Args: cobra.NoArgs,
		RunE: runRules,
	}

	cmd.Flags().Bool("yaml", false, "print the rules as a YAML rules file")

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	rules, err := config.LoadRules(viper.GetViper())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		data, err := classification.EncodeRuleSet(rules)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	_, err = fmt.Fprintln(out, formatRules(rules))
	return err
}

func formatRules(rules classification.RuleSet) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)

	var b strings.Builder
	b.WriteString(header.Render("Incidentes") + "\n")
	for i, r := range rules.Incidents {
		fmt.Fprintf(&b, "  %d. %-20s → %s\n", i+1, r.Pattern, r.Kind)
	}
	b.WriteString(cli.FormatInfo("When several patterns match, the last one listed wins") + "\n\n")

	b.WriteString(header.Render("Recipientes") + "\n")
	for _, c := range rules.Containers {
		fmt.Fprintf(&b, "  %-48s %s\n", c.WasteType, c.Container)
	}

	b.WriteString("\n" + header.Render("Estados") + "\n")
	for _, a := range rules.StateAliases {
		fmt.Fprintf(&b, "  %-20s → %s\n", a.Raw, a.Canonical)
	}

	return strings.TrimRight(b.String(), "\n")
}
