package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/renderpolicy"
)

// Version is the framekit version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Env is used to detect terminal capabilities. nil reads the process environment.
	Env renderpolicy.Environ

	// SkipUserConfig ignores the config file in the XDG config dirs.
	SkipUserConfig bool
}

// usageError marks errors caused by bad arguments or flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	a := &app{
		in:   os.Stdin,
		out:  os.Stdout,
		errW: os.Stderr,
		env:  renderpolicy.OSEnviron{},
	}
	if opts != nil {
		if opts.In != nil {
			a.in = opts.In
		}
		if opts.Out != nil {
			a.out = opts.Out
		}
		if opts.Err != nil {
			a.errW = opts.Err
		}
		if opts.Env != nil {
			a.env = opts.Env
		}
		a.skipUserConfig = opts.SkipUserConfig
	}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(argv)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errW)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0, nil
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "command failed"
	}
	fmt.Fprintf(a.errW, "Error: %s\n", msg)

	var ue usageError
	if errors.As(err, &ue) || isCobraUsageError(err) {
		fmt.Fprintf(a.errW, "Run '%s --help' for usage.\n", root.Name())
		return 2, errors.New(msg)
	}
	return 1, errors.New(msg)
}

// isCobraUsageError recognizes the errors cobra returns for unknown subcommands, which don't pass through the flag error func.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag")
}

const tabWidth = 4

// readInput reads r entirely and sanitizes it for display.
func readInput(r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return termformat.Sanitize(buf.String(), tabWidth), nil
}
