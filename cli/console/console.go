/*
Package console implements interactive instruction encoder/decoder shell.
*/
package console

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nspcc-dev/fvm/cli/options"
	"github.com/nspcc-dev/fvm/pkg/config"
	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/vm/assembler"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	assemblerKey        = "assembler"
	configKey           = "config"
	loggerKey           = "logger"
	exitFuncKey         = "exitFunc"
	exitedKey           = "exited"
	readlineInstanceKey = "readlineKey"
)

// Console command errors.
var (
	ErrMissingParameter  = errors.New("missing argument")
	ErrUnquotedParameter = errors.New("instruction must be a single quoted argument")
)

var commands = []cli.Command{
	{
		Name:        "exit",
		Usage:       "Exit the console",
		Description: "Exit the console",
		Action:      handleExit,
	},
	{
		Name:      "encode",
		Usage:     "Encode a single instruction",
		UsageText: `encode "<instruction>"`,
		Description: `Parses the instruction and prints its binary form in hex. The instruction must
be quoted as it contains spaces, e.g.:

    encode "add r0 r1 42;"
`,
		Action: handleEncode,
	},
	{
		Name:      "decode",
		Usage:     "Decode a single instruction",
		UsageText: `decode <hex>`,
		Description: `Decodes hex-encoded binary instruction and prints its text form, e.g.:

    decode 100001010102
`,
		Action: handleDecode,
	},
	{
		Name:      "inspect",
		Usage:     "Show per-field encoding of a single instruction",
		UsageText: `inspect "<instruction>"`,
		Action:    handleInspect,
	},
	{
		Name:      "env",
		Usage:     "Show or change arithmetic environment",
		UsageText: `env [<name>]`,
		Description: fmt.Sprintf(`Prints the current environment of literals when called without arguments,
otherwise switches to the given one. Known environments: %s.
`, strings.Join(field.Names(), ", ")),
		Action: handleEnv,
	},
}

var completer *readline.PrefixCompleter

func init() {
	var pcItems []readline.PrefixCompleterInterface
	for _, c := range commands {
		if c.Name == "env" {
			var envItems []readline.PrefixCompleterInterface
			for _, name := range field.Names() {
				envItems = append(envItems, readline.PcItem(name))
			}
			pcItems = append(pcItems, readline.PcItem(c.Name, envItems...))
			continue
		}
		pcItems = append(pcItems, readline.PcItem(c.Name))
	}
	completer = readline.NewPrefixCompleter(pcItems...)
}

// Console is an interactive shell for instruction encoding.
type Console struct {
	shell *cli.App
}

// NewWithConfig returns a new Console instance using the provided readline
// config and application config. onExit is called by the "exit" command.
func NewWithConfig(onExit func(int), c *readline.Config, cfg config.Config, log *zap.Logger) (*Console, error) {
	a, err := options.GetAssembler(cfg.ApplicationConfiguration)
	if err != nil {
		return nil, err
	}
	if c.AutoComplete == nil {
		// Autocomplete commands on TAB.
		c.AutoComplete = completer
	}
	if len(c.Prompt) == 0 {
		c.Prompt = cfg.ApplicationConfiguration.Console.Prompt
	}
	if len(c.HistoryFile) == 0 {
		c.HistoryFile = cfg.ApplicationConfiguration.Console.HistoryFile
	}
	l, err := readline.NewEx(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	ctl := cli.NewApp()
	ctl.Name = "FVM console"

	// Empty names prevent filepath.Base(os.Args[0]) from being used in help.
	ctl.HelpName = ""
	ctl.UsageText = ""

	ctl.Writer = l.Stdout()
	ctl.ErrWriter = l.Stderr()
	ctl.Version = config.Version
	ctl.Usage = "Field VM instruction console"

	// Override default error handler in order not to exit on error.
	ctl.ExitErrHandler = func(context *cli.Context, err error) {}

	ctl.Commands = commands
	ctl.Metadata = map[string]interface{}{
		assemblerKey:        a,
		configKey:           &cfg,
		loggerKey:           log,
		exitFuncKey:         onExit,
		exitedKey:           false,
		readlineInstanceKey: l,
	}
	return &Console{shell: ctl}, nil
}

func getAssemblerFromContext(app *cli.App) assembler.Assembler {
	return app.Metadata[assemblerKey].(assembler.Assembler)
}

func getConfigFromContext(app *cli.App) *config.Config {
	return app.Metadata[configKey].(*config.Config)
}

func getLoggerFromContext(app *cli.App) *zap.Logger {
	return app.Metadata[loggerKey].(*zap.Logger)
}

func getExitFuncFromContext(app *cli.App) func(int) {
	return app.Metadata[exitFuncKey].(func(int))
}

func getReadlineInstanceFromContext(app *cli.App) *readline.Instance {
	return app.Metadata[readlineInstanceKey].(*readline.Instance)
}

func handleExit(c *cli.Context) error {
	l := getReadlineInstanceFromContext(c.App)
	_ = l.Close()
	fmt.Fprintln(c.App.Writer, "Bye!")
	c.App.Metadata[exitedKey] = true
	getExitFuncFromContext(c.App)(0)
	return nil
}

// instructionArg returns the only argument of c. Splitting an unquoted
// instruction loses its exact spacing, so it's not accepted.
func instructionArg(c *cli.Context) (string, error) {
	switch c.NArg() {
	case 0:
		return "", ErrMissingParameter
	case 1:
		return c.Args().First(), nil
	default:
		return "", ErrUnquotedParameter
	}
}

func handleEncode(c *cli.Context) error {
	s, err := instructionArg(c)
	if err != nil {
		return err
	}
	b, err := getAssemblerFromContext(c.App).EncodeInstruction(s)
	if err != nil {
		return err
	}
	getLoggerFromContext(c.App).Debug("instruction encoded", zap.String("instruction", s), zap.Int("size", len(b)))
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(b))
	return nil
}

func handleDecode(c *cli.Context) error {
	if !c.Args().Present() {
		return ErrMissingParameter
	}
	b, err := hex.DecodeString(strings.Join(c.Args(), ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	s, err := getAssemblerFromContext(c.App).DecodeInstruction(b)
	if err != nil {
		return err
	}
	getLoggerFromContext(c.App).Debug("instruction decoded", zap.String("instruction", s), zap.Int("size", len(b)))
	fmt.Fprintln(c.App.Writer, s)
	return nil
}

func handleInspect(c *cli.Context) error {
	s, err := instructionArg(c)
	if err != nil {
		return err
	}
	fields, err := getAssemblerFromContext(c.App).Inspect(s)
	if err != nil {
		return err
	}
	for _, f := range fields {
		fmt.Fprintf(c.App.Writer, "%s: %s (%s)\n", f.Name, hex.EncodeToString(f.Bytes), f.Text)
	}
	return nil
}

func handleEnv(c *cli.Context) error {
	if !c.Args().Present() {
		fmt.Fprintln(c.App.Writer, getAssemblerFromContext(c.App).Environment().Name())
		return nil
	}
	cfg := getConfigFromContext(c.App)
	appCfg := cfg.ApplicationConfiguration
	appCfg.Environment = c.Args().First()
	a, err := options.GetAssembler(appCfg)
	if err != nil {
		return err
	}
	cfg.ApplicationConfiguration = appCfg
	c.App.Metadata[assemblerKey] = a
	getLoggerFromContext(c.App).Info("environment changed", zap.String("env", appCfg.Environment))
	fmt.Fprintf(c.App.Writer, "environment: %s\n", appCfg.Environment)
	return nil
}

// Run waits for user input from Stdin and executes the passed command.
func (c *Console) Run() error {
	l := getReadlineInstanceFromContext(c.shell)
	for {
		line, err := l.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil // OK, stop execution.
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err) // Critical error, stop execution.
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		args, err := shellquote.Split(line)
		if err != nil {
			writeErr(c.shell.ErrWriter, fmt.Errorf("failed to parse arguments: %w", err))
			continue // Not a critical error, continue execution.
		}

		err = c.shell.Run(append([]string{"console"}, args...))
		if err != nil {
			writeErr(c.shell.ErrWriter, err) // Various command/flags parsing errors and execution errors.
		}
		if c.shell.Metadata[exitedKey].(bool) {
			return nil
		}
	}
}

// NewCommands returns the "console" command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:      "console",
		Usage:     "Start interactive instruction console",
		UsageText: "console [-e <env>] [--config-file <file>] [--debug]",
		Action:    startConsole,
		Flags:     options.Common,
	}}
}

func startConsole(ctx *cli.Context) error {
	cfg, log, _, exitErr := options.Setup(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer func() { _ = log.Sync() }()

	con, err := NewWithConfig(os.Exit, &readline.Config{}, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := con.Run(); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func writeErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
