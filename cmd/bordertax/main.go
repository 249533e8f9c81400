package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/reoring/bordertax/i18n"
	"github.com/reoring/bordertax/internal/config"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	os.Exit(exitCode(log, run(log, os.Stdout, os.Stderr, os.Args[1:])))
}

// errUsage reports a missing or unknown subcommand.
var errUsage = errors.New("usage")

func run(log *logrus.Logger, stdout, stderr io.Writer, argv []string) error {
	if len(argv) < 1 {
		usage(stderr)
		return errUsage
	}
	sub, args := argv[0], argv[1:]
	switch sub {
	case "demo":
		return demoCmd(stdout)
	case "process":
		return processCmd(log, stdout, args)
	case "bench":
		return benchCmd(log, stdout, args)
	case "schema":
		return schemaCmd(stdout)
	case "generate":
		return generateCmd(log, stderr, args)
	}
	usage(stderr)
	return errUsage
}

// exitCode maps the result of run to a process status: -h is a clean exit.
func exitCode(log *logrus.Logger, err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	}
	log.Error(err)
	return 1
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `bordertax CLI

Usage:
  bordertax demo
  bordertax process  [-config f.yaml] [-fixture users.json[.zst]] [-size N] [-format table|json|yaml]
  bordertax bench    [-config f.yaml] [-n iterations] [-format table|json|yaml]
  bordertax schema
  bordertax generate [-config f.yaml] [-size N] -o users.{json,yaml}[.zst]`)
}

// commonFlags are shared by the subcommands that read a config file.
type commonFlags struct {
	configPath string
	format     string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.format, "format", "", "output format: table, json or yaml (overrides config)")
	fs.StringVar(&c.logLevel, "log-level", "", "log level (overrides config)")
}

// load reads the config, applies flag overrides and configures log and i18n.
func (c *commonFlags) load(log *logrus.Logger) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.format != "" {
		cfg.Output.Format = c.format
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	lvl, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, err
	}
	log.SetLevel(lvl)
	i18n.SetLanguage(cfg.Log.Language)
	log.WithFields(logrus.Fields{
		"config": c.configPath,
		"format": cfg.Output.Format,
		"level":  lvl.String(),
	}).Debug("configuration loaded")
	return cfg, nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
