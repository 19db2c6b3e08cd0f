package renderpolicy

import (
	"io"
	"os"
	"strings"

	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Environ is a source of environment variables. It has the same method set as termenv.Environ.
type Environ interface {
	Environ() []string
	Getenv(string) string
}

// OSEnviron reads the process environment.
type OSEnviron struct{}

func (OSEnviron) Environ() []string        { return os.Environ() }
func (OSEnviron) Getenv(key string) string { return os.Getenv(key) }

// MapEnviron is a fixed environment, mostly for tests.
type MapEnviron map[string]string

func (m MapEnviron) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}

func (m MapEnviron) Getenv(key string) string { return m[key] }

var ciMarkers = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "BUILDKITE", "CIRCLECI", "JENKINS_URL", "TEAMCITY_VERSION", "TF_BUILD"}

// modernTerminals are TERM_PROGRAM values of terminals that measure emoji sequences as one wide glyph.
var modernTerminals = []string{"iterm.app", "wezterm", "ghostty", "vscode", "tabby", "warpterminal", "rio"}

// modernMarkers are variables only set inside such terminals.
var modernMarkers = []string{"KITTY_WINDOW_ID", "WEZTERM_EXECUTABLE", "GHOSTTY_RESOURCES_DIR", "WT_SESSION", "ALACRITTY_WINDOW_ID"}

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal (including a Cygwin/MSYS pty).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FromEnv detects the policy for writing to out, given env:
//   - NO_COLOR (non-empty) disables color. FORCE_COLOR (non-empty, not "0") enables it even when out is not a terminal; "1", "2" and "3" select 16, 256 and 24-bit color.
//   - The color depth otherwise comes from TERM and COLORTERM (termenv). Output that is not a terminal gets no color.
//   - TERM=dumb disables color, Unicode and cursor movement.
//   - CI environments disable emoji and cursor movement.
//   - Unicode requires a UTF-8 locale (LC_ALL, LC_CTYPE, LANG). With no locale set, Unicode is assumed.
//   - Modern widths are assumed only in terminals known to use them (TERM_PROGRAM, KITTY_WINDOW_ID, ...).
func FromEnv(env Environ, out io.Writer) Policy {
	tty := IsTerminal(out)
	term := strings.ToLower(env.Getenv("TERM"))
	dumb := term == "dumb"
	ci := false
	for _, k := range ciMarkers {
		if v := env.Getenv(k); v != "" && v != "false" && v != "0" {
			ci = true
			break
		}
	}

	p := Policy{
		Interactive: tty && !dumb && !ci,
		Unicode:     !dumb && utf8Locale(env),
	}
	p.Emoji = p.Unicode && !ci
	p.ForceASCIIIcons = !p.Emoji
	p.ModernWidth = p.Emoji && modernTerminal(env, term)

	p.Depth = detectDepth(env, out, tty)
	if dumb && !forced(env) {
		p.Depth = termformat.DepthNone
	}
	p.Color = p.Depth != termformat.DepthNone
	return p
}

func forced(env Environ) bool {
	v := env.Getenv("FORCE_COLOR")
	return v != "" && v != "0" && v != "false"
}

func detectDepth(env Environ, out io.Writer, tty bool) termformat.ColorDepth {
	if env.Getenv("NO_COLOR") != "" {
		return termformat.DepthNone
	}

	opts := []termenv.OutputOption{termenv.WithEnvironment(env), termenv.WithTTY(tty)}
	force := forced(env)
	if force {
		opts = append(opts, termenv.WithUnsafe())
	}
	depth := termformat.DepthFromProfile(termenv.NewOutput(out, opts...).EnvColorProfile())
	if !force {
		return depth
	}

	switch env.Getenv("FORCE_COLOR") {
	case "2":
		return max(depth, termformat.Depth256)
	case "3":
		return termformat.DepthTrueColor
	default:
		return max(depth, termformat.Depth16)
	}
}

func utf8Locale(env Environ) bool {
	for _, k := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := env.Getenv(k)
		if v == "" {
			continue
		}
		v = strings.ToLower(v)
		return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
	}
	return true
}

func modernTerminal(env Environ, term string) bool {
	prog := strings.ToLower(env.Getenv("TERM_PROGRAM"))
	for _, m := range modernTerminals {
		if prog == m {
			return true
		}
	}
	for _, k := range modernMarkers {
		if env.Getenv(k) != "" {
			return true
		}
	}
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") || strings.Contains(term, "wezterm")
}

func stdout() io.Writer {
	return os.Stdout
}
