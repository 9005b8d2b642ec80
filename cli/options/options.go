/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"

	"github.com/nspcc-dev/fvm/pkg/config"
	"github.com/nspcc-dev/fvm/pkg/field"
	"github.com/nspcc-dev/fvm/pkg/io"
	"github.com/nspcc-dev/fvm/pkg/vm/assembler"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigFile is a flag for commands that use configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file (built-in defaults are used if omitted)",
}

// Debug is a flag for commands that allow debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (overrides configuration)",
}

// Env is a flag selecting the arithmetic environment of literals.
var Env = cli.StringFlag{
	Name:  "env, e",
	Usage: fmt.Sprintf("arithmetic environment of literals, one of %v (overrides configuration)", field.Names()),
}

// Common is a set of flags used by all commands.
var Common = []cli.Flag{ConfigFile, Debug, Env}

// GetConfigFromContext returns configuration specified by the context flags.
// The "env" flag overrides the configured environment.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if env := ctx.String("env"); len(env) != 0 {
		cfg.ApplicationConfiguration.Environment = env
		if err := cfg.ApplicationConfiguration.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// GetAssembler returns an assembler for the environment and limits specified
// by cfg.
func GetAssembler(cfg config.ApplicationConfiguration) (assembler.Assembler, error) {
	return assembler.New(cfg.Environment, cfg.MaxInstructions)
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := io.MakeDirForFile(logPath, "logger"); err != nil {
			return nil, nil, err
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}

// Setup combines GetConfigFromContext, HandleLoggingParams and GetAssembler,
// it's the usual prologue of every command. Errors are ready to be returned
// from the command action.
func Setup(ctx *cli.Context) (config.Config, *zap.Logger, assembler.Assembler, cli.ExitCoder) {
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return cfg, nil, nil, cli.NewExitError(err, 1)
	}
	log, _, err := HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return cfg, nil, nil, cli.NewExitError(err, 1)
	}
	a, err := GetAssembler(cfg.ApplicationConfiguration)
	if err != nil {
		return cfg, nil, nil, cli.NewExitError(err, 1)
	}
	return cfg, log, a, nil
}
