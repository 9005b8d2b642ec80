package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/fvm/cli/asm"
	"github.com/nspcc-dev/fvm/cli/console"
	"github.com/nspcc-dev/fvm/pkg/config"
	"github.com/urfave/cli"
)

// DefaultVersion is reported when no version was set at build time.
const DefaultVersion = "dev"

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "fvm\nVersion: %s\nGoVersion: %s\n",
		c.App.Version,
		runtime.Version(),
	)
}

// New creates an fvm instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "fvm"
	ctl.Version = config.Version
	if len(ctl.Version) == 0 {
		ctl.Version = DefaultVersion
	}
	ctl.Usage = "Field VM bytecode assembler and disassembler"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, asm.NewCommands()...)
	ctl.Commands = append(ctl.Commands, console.NewCommands()...)
	return ctl
}
