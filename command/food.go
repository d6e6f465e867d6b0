package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"
)

// FoodCommand returns the food command group.
func FoodCommand() *cli.Command {
	return &cli.Command{
		Name:  "food",
		Usage: "browse the food catalog",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list catalog foods",
				Action: foodList,
			},
			{
				Name:      "show",
				Usage:     "show one food",
				ArgsUsage: "ID",
				Action:    foodShow,
			},
		},
	}
}

func foodList(c *cli.Context) error {
	env := envFrom(c)
	foods := env.Catalog.All()

	return render(env.Out, env.Format, foods, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tFOOD\tKCAL\tPROTEIN\tFAT\tCARBS")
		for _, f := range foods {
			writeMacroRow(w, strconv.Itoa(f.ID), f.Name, f.Macros)
		}
	})
}

func foodShow(c *cli.Context) error {
	env := envFrom(c)

	id, err := parseIndex(c)
	if err != nil {
		return err
	}
	food, err := env.Catalog.Resolve(id)
	if err != nil {
		return err
	}

	return render(env.Out, env.Format, food, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tFOOD\tKCAL\tPROTEIN\tFAT\tCARBS")
		writeMacroRow(w, strconv.Itoa(food.ID), food.Name, food.Macros)
	})
}
