package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// featuresCommand creates the features command.
func (c *CLI) featuresCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List catalog features and what each contributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Catalog = catalogPath
			}
			cat, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}

			names := cat.Features()
			if len(names) == 0 {
				printWarning("Catalog %s defines no features", cfg.Catalog)
				return nil
			}
			for _, name := range names {
				frag, _ := cat.Fragment(name)
				kinds := frag.Kinds()
				fmt.Fprintf(c.out, "%s  %s\n", StyleHighlight.Render(name), StyleDim.Render(strings.Join(kinds, ", ")))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "feature catalog TOML file (default from config)")
	cmd.RegisterFlagCompletionFunc("catalog", completeCatalogFiles)
	return cmd
}
