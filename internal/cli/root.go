package cli

import (
	"fmt"
	"io"

	"github.com/codalotl/framekit/internal/config"
	"github.com/codalotl/framekit/internal/console"
	"github.com/codalotl/framekit/internal/effects"
	"github.com/codalotl/framekit/internal/logging"
	"github.com/codalotl/framekit/internal/renderpolicy"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    int
	configPath string
	policy     string
	noColor    bool
	ascii      bool
}

// app is the state shared by all commands of one Run. It is filled in by the root command's PersistentPreRunE.
type app struct {
	in             io.Reader
	out            io.Writer
	errW           io.Writer
	env            renderpolicy.Environ
	skipUserConfig bool

	flags rootFlags

	cfg      config.Config
	policy   renderpolicy.Policy
	registry *effects.Registry
	console  *console.Console
	log      zerolog.Logger

	closeLog func() error
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "framekit",
		Short:         "Framekit lays out and colors text for terminals",
		Long:          "Framekit draws bordered frames, measures grapheme widths and applies color gradients, adapting to what the terminal can display.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.CountVarP(&a.flags.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	pf.StringVar(&a.flags.configPath, "config", "", "Config file (yaml or toml), loaded after the user config")
	pf.StringVar(&a.flags.policy, "policy", "", "Render policy preset: auto, full, minimal, ci or nocolor")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable color output")
	pf.BoolVar(&a.flags.ascii, "ascii", false, "Use ASCII borders and icons only")

	cmd.AddCommand(newFrameCmd(a))
	cmd.AddCommand(newTableCmd(a))
	cmd.AddCommand(newWidthCmd(a))
	cmd.AddCommand(newGraphemesCmd(a))
	cmd.AddCommand(newCutCmd(a))
	cmd.AddCommand(newGradientCmd(a))
	cmd.AddCommand(newAnimateCmd(a))
	cmd.AddCommand(newPresetsCmd(a))
	cmd.AddCommand(newPolicyCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads configuration, resolves the render policy and configures logging.
func (a *app) setup() error {
	a.closeLog = logging.Setup(logging.Options{Verbosity: a.flags.verbose, Console: a.errW, NoColor: a.flags.noColor})
	a.log = logging.Get("cli")

	cfg, err := config.Load(config.LoadOptions{Path: a.flags.configPath, SkipUserConfig: a.skipUserConfig})
	if err != nil {
		return err
	}
	if a.flags.policy != "" {
		if _, ok := renderpolicy.Presets[a.flags.policy]; !ok && a.flags.policy != "auto" {
			return usageError{err: fmt.Errorf("unknown policy preset %q", a.flags.policy)}
		}
		cfg.Policy.Preset = a.flags.policy
	}
	a.cfg = cfg

	p := cfg.RenderPolicy(renderpolicy.FromEnv(a.env, a.out))
	var o renderpolicy.Override
	if a.flags.noColor {
		off := false
		o.Color = &off
	}
	if a.flags.ascii {
		off, on := false, true
		o.Unicode = &off
		o.Emoji = &off
		o.ModernWidth = &off
		o.ForceASCIIIcons = &on
	}
	a.policy = p.WithOverride(o)
	renderpolicy.SetDefault(a.policy)

	if a.registry, err = cfg.Registry(); err != nil {
		return err
	}
	a.console = console.New(a.out, console.WithPolicy(a.policy), console.WithRegistry(a.registry))

	a.log.Debug().
		Bool("unicode", a.policy.Unicode).
		Str("depth", a.policy.Depth.String()).
		Bool("emoji", a.policy.Emoji).
		Bool("interactive", a.policy.Interactive).
		Msg("render policy resolved")
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
	renderpolicy.ResetDefault()
}

// usageArgs wraps a cobra.PositionalArgs so its errors are usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}
