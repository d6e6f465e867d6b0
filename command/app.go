// Package command defines the dietlog command tree.
//
// It uses urfave/cli/v2. All commands share one Env, built in the app's Before
// hook, so that the interactive shell can run many commands against the same
// stores.
package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/aguxez/dietlog/config"
	"github.com/aguxez/dietlog/logging"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	app := newApp(true)
	app.Flags = globalFlags()
	app.Before = setup
	return app
}

// newApp builds the command tree. Long-running commands are left out of the
// apps the shell runs for each line.
func newApp(topLevel bool) *cli.App {
	commands := []*cli.Command{
		MealCommand(),
		ExerciseCommand(),
		FoodCommand(),
		SuggestCommand(),
	}
	if topLevel {
		commands = append(commands, ShellCommand(), ServeCommand())
	}

	return &cli.App{
		Name:     "dietlog",
		Usage:    "record meals and exercise",
		Version:  fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Commands: commands,
		Metadata: map[string]any{},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (YAML)",
			EnvVars: []string{"DIETLOG_CONFIG"},
			Value:   config.DefaultPath(),
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "directory holding the meals, exercises and foods files",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
			Value:   string(FormatTable),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "diagnostic log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored notices",
		},
	}
}

// setup loads configuration and opens the stores.
func setup(c *cli.Context) error {
	if _, ok := c.App.Metadata[envKey].(*Env); ok {
		return nil
	}

	if c.Bool("no-color") {
		color.NoColor = true
	}

	format, err := ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if c.IsSet("data-dir") {
		overrides["data.dir"] = c.String("data-dir")
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}

	cfg, err := config.Load(c.String("config"), c.IsSet("config"), overrides)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})

	env, err := NewEnv(cfg, logger, c.App.Writer)
	if err != nil {
		return err
	}
	env.Format = format

	c.App.Metadata[envKey] = env
	return nil
}

// envFrom returns the Env set up by Before.
func envFrom(c *cli.Context) *Env {
	env, _ := c.App.Metadata[envKey].(*Env)
	return env
}
