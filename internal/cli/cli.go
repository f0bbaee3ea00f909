// Package cli implements the rlmeta command line: a queue of commands
// processed left to right (--support, --copy PATH, --embed NAME PATH,
// --compile PATH), the way rlmeta.py's __main__ block walks sys.argv and
// the way 32bitkid-pigeon's main.go separates flag parsing from the
// input/output plumbing it drives.
package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"

	"github.com/rickardlindberg/rlmeta/internal/config"
	"github.com/rickardlindberg/rlmeta/internal/grammar"
	"github.com/rickardlindberg/rlmeta/internal/pipeline"
	"github.com/rickardlindberg/rlmeta/internal/stream"
	"github.com/rickardlindberg/rlmeta/internal/support"
	"github.com/rickardlindberg/rlmeta/internal/value"
)

// Exit codes, mirroring 32bitkid-pigeon's main.go convention of a distinct
// code per failure category rather than a single catch-all.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitIO      = 2
	ExitCompile = 3
)

// Run processes args (normally os.Args[1:]) as a queue of commands,
// writing to stdout/stderr, and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	level := hclog.LevelFromString(cfg.LogLevel)
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "rlmeta",
		Level:  level,
		Output: stderr,
	})

	p := pipeline.New(pipeline.WithLogger(logger), pipeline.WithIndentPrefix(cfg.IndentPrefix))

	if len(args) == 0 {
		// rlmeta.py:861: `args = sys.argv[1:] or ["--compile", "-"]`.
		args = []string{"--compile", "-"}
	}

	noColor := cfg.NoColor || os.Getenv("NO_COLOR") != ""

	i := 0
	for i < len(args) {
		cmd := args[i]
		i++
		switch cmd {
		case "--support":
			fmt.Fprint(stdout, support.Source)

		case "--copy":
			if i >= len(args) {
				fmt.Fprintf(stderr, "--copy requires a PATH argument\n%s", usage())
				return ExitUsage
			}
			path := args[i]
			i++
			if err := runCopy(stdout, path); err != nil {
				fmt.Fprintln(stderr, err)
				return ExitIO
			}

		case "--embed":
			name, path, rest, err := takeTwo(args, i, cmd)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitUsage
			}
			i = rest
			if err := runEmbed(stdout, stderr, name, path); err != nil {
				fmt.Fprintln(stderr, err)
				return ExitIO
			}

		case "--compile":
			if i >= len(args) {
				fmt.Fprintf(stderr, "--compile requires a PATH argument\n%s", usage())
				return ExitUsage
			}
			path := args[i]
			i++
			if err := runCompile(p, stdout, path, noColor); err != nil {
				fmt.Fprintln(stderr, err)
				return ExitCompile
			}

		default:
			fmt.Fprintf(stderr, "ERROR: Unknown command '%s'\n", cmd)
			return ExitUsage
		}
	}

	return ExitOK
}

func usage() string {
	return `usage: rlmeta COMMAND [COMMAND...]

Commands (processed in order):
  --support          write the embedded runtime support source to stdout
  --copy PATH        write the verbatim content of PATH to stdout
  --embed NAME PATH  write NAME = <repr of PATH's contents> to stdout
  --compile PATH     compile the .rlmeta grammar at PATH to Go source on stdout
`
}

func takeTwo(args []string, i int, cmd string) (string, string, int, error) {
	if i+1 >= len(args) {
		return "", "", i, fmt.Errorf("%s requires NAME and PATH arguments\n%s", cmd, usage())
	}
	return args[i], args[i+1], i + 2, nil
}

func runCopy(stdout io.Writer, path string) error {
	content, err := readFileOrStdin(path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, content)
	return err
}

var identLike = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// runEmbed writes exactly "NAME = <repr of PATH's contents>\n" to stdout,
// matching rlmeta.py:869-872's wire format byte for byte. When NAME isn't
// already a valid Go identifier, a hint naming a safe identifier is printed
// to stderr instead of stdout, so the spec-exact output is never perturbed.
func runEmbed(stdout, stderr io.Writer, name, path string) error {
	content, err := readFileOrStdin(path)
	if err != nil {
		return err
	}
	if !identLike.MatchString(name) {
		fmt.Fprintf(stderr, "note: %q isn't a valid Go identifier; consider %s\n", name, identifierComment(name))
	}
	fmt.Fprintf(stdout, "%s = %s\n", name, value.Repr(content))
	return nil
}

func readFileOrStdin(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func runCompile(p *pipeline.Pipeline, stdout io.Writer, path string, noColor bool) error {
	src, err := readFileOrStdin(path)
	if err != nil {
		return err
	}
	result, err := p.CompileChain(src, []string{
		grammar.RuleParserFile,
		grammar.RuleCodeGeneratorAsts,
	})
	if err != nil {
		if me, ok := err.(*stream.MatchError); ok {
			return fmt.Errorf("%s", pipeline.FormatError(os.Stderr, me, noColor))
		}
		return err
	}
	code, _ := result.(string)
	fmt.Fprintln(stdout, code)
	return nil
}

// identifierComment is exposed for tests: it documents the strcase.ToCamel
// fallback runEmbed uses when NAME isn't already identifier-shaped.
func identifierComment(name string) string {
	if identLike.MatchString(name) {
		return name
	}
	return strcase.ToCamel(name)
}
