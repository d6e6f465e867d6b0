package command

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aguxez/dietlog/api"
	"github.com/aguxez/dietlog/filewatch"
)

// ServeCommand returns the HTTP server command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve meals, exercises and foods as read-only JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default: server.address from config)"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	env := envFrom(c)

	addr := env.Config.Server.Address
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	var planner api.MealPlanner
	p, err := env.Planner()
	if err != nil {
		return err
	}
	if p != nil {
		planner = p
	}

	fw, err := filewatch.NewFileWatcher(env.Config.FoodsPath(), env.Catalog, env.Logger)
	if err != nil {
		env.Logger.Warn("food catalog will not reload", "error", err)
	} else {
		go fw.Watch()
		defer fw.Close()
	}

	handler := api.NewHandler(&sync.Mutex{}, env.Meals, env.Exercises, env.Catalog, planner, env.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	notice(env.Out, "Serving on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	env.Logger.Info("server stopping")
	return srv.Shutdown(shutdownCtx)
}
