package cli

import (
	"fmt"

	"github.com/codalotl/framekit/internal/config"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"
)

func newPolicyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the resolved render policy",
		Long:  "Print the render policy in effect: what was detected from the environment, adjusted by the config file, FRAMEKIT_* variables and global flags.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yamlv3.Marshal(a.policy)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(b); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "width_mode: %s\n", a.policy.WidthMode())
			return err
		},
	}
}

type configOptions struct {
	format string
	path   bool
}

func newConfigCmd(a *app) *cobra.Command {
	opts := &configOptions{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after merging defaults, the user config file, --config and FRAMEKIT_* variables. The output is a valid config file.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.path {
				p := config.UserConfigPath()
				if p == "" {
					p = "(none)"
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), p)
				return err
			}
			b, err := a.cfg.Marshal(opts.format)
			if err != nil {
				return usageError{err: err}
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().BoolVar(&opts.path, "path", false, "Print the path of the user config file instead")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the framekit version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "framekit %s\n", Version)
			return err
		},
	}
}
