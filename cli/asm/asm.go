/*
Package asm implements assembler commands: text to binary program conversion
and back, plus per-field instruction inspection.
*/
package asm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nspcc-dev/fvm/cli/options"
	fio "github.com/nspcc-dev/fvm/pkg/io"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	errNoInput       = errors.New("no input file was found, specify an input file with the '--in' or '-i' flag")
	errNoInstruction = errors.New("no instruction given")
)

var (
	inFlag = cli.StringFlag{
		Name:  "in, i",
		Usage: "input file",
	}
	outFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (standard output if omitted)",
	}
	hexFlag = cli.BoolFlag{
		Name:  "hex",
		Usage: "use hex encoding for binary programs",
	}
)

// NewCommands returns assembler commands.
func NewCommands() []cli.Command {
	ioFlags := append([]cli.Flag{inFlag, outFlag, hexFlag}, options.Common...)
	return []cli.Command{
		{
			Name:      "asm",
			Usage:     "Assemble program text into binary",
			UsageText: "asm -i <file.fvm> [-o <file.bin>] [--hex] [-e <env>] [--config-file <file>]",
			Description: `Parses program text (one instruction per line terminated with ';',
   "//" comments and blank lines are ignored) and writes the binary program.
   When the output is a terminal and no output file is given, or when --hex is
   set, the program is hex-encoded.
`,
			Action: assemble,
			Flags:  ioFlags,
		},
		{
			Name:      "disasm",
			Usage:     "Disassemble binary program into text",
			UsageText: "disasm -i <file.bin> [-o <file.fvm>] [--hex] [-e <env>] [--config-file <file>]",
			Description: `Decodes the binary program (hex-encoded if --hex is set) and writes its
   canonical text. The program environment must match the selected one.
`,
			Action: disassemble,
			Flags:  ioFlags,
		},
		{
			Name:      "inspect",
			Usage:     "Show per-field encoding of a single instruction",
			UsageText: `inspect [-e <env>] [--config-file <file>] "<instruction>"`,
			Action:    inspect,
			Flags:     options.Common,
		},
	}
}

func readInput(ctx *cli.Context, isHex bool) ([]byte, error) {
	in := ctx.String("in")
	if len(in) == 0 {
		return nil, errNoInput
	}
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if isHex {
		data, err = hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
	}
	return data, nil
}

func writeOutput(ctx *cli.Context, data []byte) error {
	out := ctx.String("out")
	if len(out) == 0 {
		_, err := ctx.App.Writer.Write(data)
		return err
	}
	if err := fio.MakeDirForFile(out, "output"); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func assemble(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	_, log, a, exitErr := options.Setup(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer func() { _ = log.Sync() }()

	src, err := readInput(ctx, false)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	prog, n, err := a.Assemble(string(src))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to assemble %s: %w", ctx.String("in"), err), 1)
	}
	log.Info("program assembled",
		zap.String("env", a.Environment().Name()),
		zap.Int("instructions", n),
		zap.Int("size", len(prog)))

	if ctx.Bool("hex") || (len(ctx.String("out")) == 0 && isTerminal(ctx.App.Writer)) {
		prog = []byte(hex.EncodeToString(prog) + "\n")
	}
	if err := writeOutput(ctx, prog); err != nil {
		return cli.NewExitError(fmt.Errorf("failed to write output: %w", err), 1)
	}
	return nil
}

func disassemble(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return cli.NewExitError("additional arguments given while this command expects none", 1)
	}
	_, log, a, exitErr := options.Setup(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer func() { _ = log.Sync() }()

	data, err := readInput(ctx, ctx.Bool("hex"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	text, n, err := a.Disassemble(data)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to disassemble %s: %w", ctx.String("in"), err), 1)
	}
	log.Info("program disassembled",
		zap.String("env", a.Environment().Name()),
		zap.Int("instructions", n))

	if err := writeOutput(ctx, []byte(text)); err != nil {
		return cli.NewExitError(fmt.Errorf("failed to write output: %w", err), 1)
	}
	return nil
}

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError(errNoInstruction, 1)
	}
	_, log, a, exitErr := options.Setup(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer func() { _ = log.Sync() }()

	s := ctx.Args().First()
	fields, err := a.Inspect(s)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to parse %q: %w", s, err), 1)
	}
	log.Debug("instruction inspected", zap.String("instruction", s), zap.Int("fields", len(fields)))

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTEXT\tBYTES")
	var total []byte
	for _, f := range fields {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, f.Text, hex.EncodeToString(f.Bytes))
		total = append(total, f.Bytes...)
	}
	fmt.Fprintf(w, "total\t%d bytes\t%s\n", len(total), hex.EncodeToString(total))
	return w.Flush()
}
