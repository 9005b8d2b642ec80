package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/fvm/cli/app"
	"github.com/nspcc-dev/fvm/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestCLIVersion(t *testing.T) {
	t.Run("build time", func(t *testing.T) {
		config.Version = "0.1.0-test"
		t.Cleanup(func() { config.Version = "" })
		e := newExecutor(t)
		e.Run(t, "fvm", "--version")
		e.checkNextLine(t, "^fvm$")
		e.checkNextLine(t, "^Version: 0.1.0-test$")
		e.checkNextLine(t, "^GoVersion:")
		e.checkEOF(t)
	})
	t.Run("default", func(t *testing.T) {
		e := newExecutor(t)
		e.Run(t, "fvm", "--version")
		e.checkNextLine(t, "^fvm$")
		e.checkNextLine(t, "^Version: "+app.DefaultVersion+"$")
		e.checkNextLine(t, "^GoVersion:")
		e.checkEOF(t)
	})
}

func TestAsmDisasmRoundTrip(t *testing.T) {
	d := t.TempDir()
	src := filepath.Join(d, "prog.fvm")
	bin := filepath.Join(d, "prog.bin")
	require.NoError(t, os.WriteFile(src, []byte(
		"add r0 r1 21888242871839275222246405745257275088548364400416034343698204186575808495616;\n"+
			"  inv r1 r0;\r\n"+
			"div r2 r0 r1; // quotient\n"+
			"ternary r3 r2 r0 1;\n"), 0644))

	e := newExecutor(t)
	e.Run(t, "fvm", "asm", "--config-file", "../config/fvm.yml", "-i", src, "-o", bin)
	e.checkEOF(t)

	e.Run(t, "fvm", "disasm", "--config-file", "../config/fvm.yml", "-i", bin)
	e.checkNextLine(t, "^add r0 r1 21888242871839275222246405745257275088548364400416034343698204186575808495616;$")
	e.checkNextLine(t, "^inv r1 r0;$")
	e.checkNextLine(t, "^div r2 r0 r1;$")
	e.checkNextLine(t, "^ternary r3 r2 r0 1;$")
	e.checkEOF(t)

	// BN254 modulus itself is not a field element.
	require.NoError(t, os.WriteFile(src, []byte(
		"add r0 r1 21888242871839275222246405745257275088548364400416034343698204186575808495617;\n"), 0644))
	e.RunWithError(t, "fvm", "asm", "--config-file", "../config/fvm.yml", "-i", src, "-o", bin)
}

func TestInspectCommand(t *testing.T) {
	e := newExecutor(t)
	e.Run(t, "fvm", "inspect", "--env", "word64", "eq r0 r1 r2;")
	e.checkNextLine(t, `^FIELD\s+TEXT\s+BYTES`)
	e.checkNextLine(t, `^opcode\s+eq\s+15`)
	e.checkNextLine(t, `^destination\s+r0\s+00`)
	e.checkNextLine(t, `^operand 1\s+r1\s+0101`)
	e.checkNextLine(t, `^operand 2\s+r2\s+0102`)
	e.checkNextLine(t, `^total\s+6 bytes\s+150001010102`)
	e.checkEOF(t)

	e.RunWithError(t, "fvm", "inspect", "--env", "word64", "eq r0 r1;")
}
