package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labsx402/paradoxd/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "paradoxd.toml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := os.WriteFile(path, []byte(config.DefaultConfigTOML), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if !quiet {
			fmt.Printf("Wrote default configuration to %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
}
