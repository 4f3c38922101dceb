package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the effective configuration",
	Long: "Load the config file, environment overrides and flags, validate the result and print " +
		"the effective settings. The database password is masked.",
	RunE: runValidateConfig,
}

func init() {
	addConfigFlags(validateConfigCmd.Flags())
	rootCmd.AddCommand(validateConfigCmd)
}

func runValidateConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
		return err
	}

	rendered, err := cfg.Redacted().YAML()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Configuration valid")
	fmt.Fprint(os.Stdout, rendered)
	return nil
}
