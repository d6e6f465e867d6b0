package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/aguxez/dietlog/filewatch"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "run commands interactively; the food catalog reloads when its file changes",
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	env := envFrom(c)

	fw, err := filewatch.NewFileWatcher(env.Config.FoodsPath(), env.Catalog, env.Logger)
	if err != nil {
		env.Logger.Warn("food catalog will not reload", "error", err)
	} else {
		go fw.Watch()
		defer fw.Close()
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	fmt.Fprintln(env.Out, `dietlog shell. Type "help" for commands, "exit" to leave.`)
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(env.Out, "dietlog> ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		switch {
		case line == "exit" || line == "quit":
			return nil
		case line != "":
			args, perr := splitArgs(line)
			if perr != nil {
				fmt.Fprintf(errOut, "error: %v\n", perr)
			} else if err := runLine(c, env, args); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}
		}

		if eof {
			fmt.Fprintln(env.Out)
			return nil
		}
	}
}

// runLine runs one shell line through a fresh command tree sharing env.
func runLine(c *cli.Context, env *Env, args []string) error {
	app := newApp(false)
	app.Metadata[envKey] = env
	app.Reader = c.App.Reader
	app.Writer = env.Out
	app.ErrWriter = c.App.ErrWriter
	app.HideVersion = true
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app.RunContext(c.Context, append([]string{app.Name}, args...))
}

// splitArgs splits a shell line on spaces, keeping double-quoted text together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case (r == ' ' || r == '\t') && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
