package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackforge/pkg/compose/buildsystems"
)

// completionCommand creates the completion command. Besides subcommands and
// flags, the generated scripts complete feature names from the catalog and
// the registered build systems.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for stackforge.

Feature arguments of "stackforge compose" complete from the catalog given by
--catalog, or the catalog in the config file. --build-system completes the
registered build systems.

  bash:        source <(stackforge completion bash)
  zsh:         stackforge completion zsh > "${fpath[1]}/_stackforge"
  fish:        stackforge completion fish | source
  powershell:  stackforge completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeFeatures offers catalog features not already on the command line,
// described by the fragment kinds they contribute.
func (c *CLI) completeFeatures(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		path = cfg.Catalog
	}
	cat, err := loadCatalog(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}
	var out []string
	for _, name := range cat.Features() {
		if taken[name] || !strings.HasPrefix(name, toComplete) {
			continue
		}
		frag, _ := cat.Fragment(name)
		out = append(out, name+"\t"+strings.Join(frag.Kinds(), ", "))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeBuildSystems(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, bs := range buildsystems.All {
		out = append(out, bs.Name+"\ttemplates under "+bs.TemplateDir+"/")
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeCatalogFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeRequestFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}
