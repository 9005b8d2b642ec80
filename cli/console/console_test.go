package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/nspcc-dev/fvm/pkg/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type readCloser struct {
	sync.Mutex
	bytes.Buffer
}

func (r *readCloser) Close() error {
	return nil
}

func (r *readCloser) Read(p []byte) (int, error) {
	r.Lock()
	defer r.Unlock()
	return r.Buffer.Read(p)
}

func (r *readCloser) WriteString(s string) {
	r.Lock()
	defer r.Unlock()
	r.Buffer.WriteString(s)
}

type lockedBuffer struct {
	sync.Mutex
	bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *lockedBuffer) String() string {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.String()
}

type executor struct {
	in       *readCloser
	out      *lockedBuffer
	con      *Console
	exitCode int
	exited   bool
}

func newTestConsole(t *testing.T, env string) *executor {
	e := &executor{
		in:       &readCloser{},
		out:      &lockedBuffer{},
		exitCode: -1,
	}
	cfg := config.Default()
	cfg.ApplicationConfiguration.Environment = env
	var err error
	e.con, err = NewWithConfig(func(code int) {
		e.exited = true
		e.exitCode = code
	}, &readline.Config{
		Prompt:         "",
		Stdin:          e.in,
		Stdout:         e.out,
		Stderr:         e.out,
		FuncIsTerminal: func() bool { return false },
	}, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return e
}

func (e *executor) run(t *testing.T, commands ...string) string {
	e.in.WriteString(strings.Join(commands, "\n") + "\n")
	done := make(chan error, 1)
	go func() { done <- e.con.Run() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console is stuck")
	}
	return e.out.String()
}

func TestEncodeDecode(t *testing.T) {
	e := newTestConsole(t, "word64")
	out := e.run(t,
		`encode "add r0 r1 42;"`,
		`decode 10000101002a00000000000000`,
		`decode 100001010102`,
	)
	require.Contains(t, out, "10000101002a00000000000000\n")
	require.Contains(t, out, "add r0 r1 42;\n")
	require.Contains(t, out, "add r0 r1 r2;\n")
	require.NotContains(t, out, "Error:")
}

func TestUnquotedInstruction(t *testing.T) {
	e := newTestConsole(t, "word64")
	out := e.run(t,
		`encode neg r3 r4;`,
		`encode add r0  r1 r2;`,
		`inspect add r0 r1 r2;`,
		`encode "neg r3 r4;"`,
	)
	require.Equal(t, 3, strings.Count(out, "Error: "+ErrUnquotedParameter.Error()), out)
	require.Contains(t, out, "01030104\n")
}

func TestErrors(t *testing.T) {
	e := newTestConsole(t, "word64")
	out := e.run(t,
		`encode`,
		`encode "add r0  r1 r2;"`,
		`encode "add r0 r1 r2; neg r0 r1;"`,
		`decode zz`,
		`decode 100001`,
		`decode ff`,
		`decode 10000101010200`,
		`encode "add r0 r1`,
		`env p256`,
	)
	require.Equal(t, 9, strings.Count(out, "Error:"), out)
	require.Contains(t, out, ErrMissingParameter.Error())
	require.Contains(t, out, "missing separator")
	require.Contains(t, out, "trailing")
	require.Contains(t, out, "invalid hex")
	require.Contains(t, out, "invalid opcode")
	require.Contains(t, out, "failed to parse arguments")
	require.Contains(t, out, "unknown environment")
}

func TestEnv(t *testing.T) {
	e := newTestConsole(t, "word64")
	out := e.run(t,
		`env`,
		`encode "add r0 r1 18446744073709551616;"`,
		`env word256`,
		`env`,
		`encode "add r0 r1 18446744073709551616;"`,
	)
	require.Contains(t, out, "word64\n")
	require.Contains(t, out, "out of range")
	require.Contains(t, out, "environment: word256\n")
	require.Contains(t, out, "10000101000000000000000000010000000000000000000000000000000000000000000000\n")
	require.Equal(t, 1, strings.Count(out, "Error:"), out)
}

func TestInspect(t *testing.T) {
	e := newTestConsole(t, "word64")
	out := e.run(t, `inspect "sub r1 7 r2;"`)
	require.Contains(t, out, "opcode: 11 (sub)\n")
	require.Contains(t, out, "destination: 01 (r1)\n")
	require.Contains(t, out, "operand 1: 000700000000000000 (7)\n")
	require.Contains(t, out, "operand 2: 0102 (r2)\n")
}

func TestExit(t *testing.T) {
	e := newTestConsole(t, "bn254")
	out := e.run(t, "exit", `encode "add r0 r1 r2;"`)
	require.True(t, e.exited)
	require.Equal(t, 0, e.exitCode)
	require.Contains(t, out, "Bye!")
	require.NotContains(t, out, "100001010102")
}
