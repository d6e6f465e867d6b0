package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aguxez/dietlog/models"
	"github.com/aguxez/dietlog/storage"
)

type mealView struct {
	Index  int              `json:"index" yaml:"index"`
	Date   string           `json:"date" yaml:"date"`
	Foods  []models.Food    `json:"foods" yaml:"foods"`
	Totals models.MacroInfo `json:"totals" yaml:"totals"`
}

func newMealView(index int, m models.Meal) mealView {
	return mealView{
		Index:  index,
		Date:   m.Date.Format(storage.DateLayout),
		Foods:  m.Foods,
		Totals: m.Totals(),
	}
}

// MealCommand returns the meal command group.
func MealCommand() *cli.Command {
	return &cli.Command{
		Name:  "meal",
		Usage: "record and inspect meals",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "record a meal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "date eaten, d/M/yyyy (default: today)",
					},
					&cli.IntSliceFlag{
						Name:     "food",
						Aliases:  []string{"f"},
						Usage:    "food id from the catalog, repeat for each food",
						Required: true,
					},
				},
				Action: mealAdd,
			},
			{
				Name:   "list",
				Usage:  "list meals with their index",
				Action: mealList,
			},
			{
				Name:      "show",
				Usage:     "show one meal",
				ArgsUsage: "INDEX",
				Action:    mealShow,
			},
			{
				Name:      "delete",
				Usage:     "delete a meal; later meals move up one index",
				ArgsUsage: "INDEX",
				Action:    mealDelete,
			},
		},
	}
}

func mealAdd(c *cli.Context) error {
	env := envFrom(c)

	date, err := parseDate(c.String("date"))
	if err != nil {
		return err
	}

	ids := c.IntSlice("food")
	if len(ids) == 0 {
		return errors.New("a meal needs at least one --food")
	}
	foods := make([]models.Food, 0, len(ids))
	for _, id := range ids {
		food, err := env.Catalog.Resolve(id)
		if err != nil {
			return err
		}
		foods = append(foods, food)
	}

	meal := models.NewMeal(foods, date)
	if err := env.Meals.Add(meal); err != nil {
		failure(env.Out, "Could not add meal to storage!")
		return fmt.Errorf("meal kept for this session only: %w", err)
	}

	env.Logger.Info("meal added", "index", env.Meals.Count()-1, "foods", len(foods))
	notice(env.Out, "Meal was successfully added! (index %d)", env.Meals.Count()-1)
	return nil
}

func mealList(c *cli.Context) error {
	env := envFrom(c)

	meals := env.Meals.List()
	views := make([]mealView, len(meals))
	for i, m := range meals {
		views[i] = newMealView(i, m)
	}

	return render(env.Out, env.Format, views, func(w io.Writer) {
		fmt.Fprintln(w, "INDEX\tDATE\tFOODS\tKCAL")
		for _, v := range views {
			fmt.Fprintf(w, "%d\t%s\t%s\t%g\n", v.Index, v.Date, foodNames(v.Foods), v.Totals.Calories)
		}
	})
}

func mealShow(c *cli.Context) error {
	env := envFrom(c)

	index, err := parseIndex(c)
	if err != nil {
		return err
	}
	meal, err := env.Meals.Get(index)
	if err != nil {
		return err
	}
	view := newMealView(index, meal)

	return render(env.Out, env.Format, view, func(w io.Writer) {
		fmt.Fprintf(w, "Meal %d on %s\n\n", view.Index, view.Date)
		fmt.Fprintln(w, "ID\tFOOD\tKCAL\tPROTEIN\tFAT\tCARBS")
		for _, f := range view.Foods {
			writeMacroRow(w, strconv.Itoa(f.ID), f.Name, f.Macros)
		}
		writeMacroRow(w, "", "total", view.Totals)
	})
}

func mealDelete(c *cli.Context) error {
	env := envFrom(c)

	index, err := parseIndex(c)
	if err != nil {
		return err
	}
	meal, err := env.Meals.Delete(index)
	if err != nil {
		return err
	}

	// Delete only changes memory.
	if err := env.Meals.Write(); err != nil {
		failure(env.Out, "Meal was removed for this session but the file could not be updated!")
		return err
	}

	env.Logger.Info("meal deleted", "index", index)
	notice(env.Out, "Deleted meal %d from %s.", index, meal.Date.Format(storage.DateLayout))
	return nil
}

func writeMacroRow(w io.Writer, id, name string, m models.MacroInfo) {
	fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\n", id, name, m.Calories, m.Protein, m.Fat, m.Carbs)
}

func foodNames(foods []models.Food) string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// parseDate reads a d/M/yyyy date, defaulting to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return models.TruncateDay(time.Now()), nil
	}
	date, err := storage.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want day/month/year, e.g. 5/3/2024", s)
	}
	return date, nil
}

// parseIndex reads the single numeric argument (an index or food id).
func parseIndex(c *cli.Context) (int, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one argument, got %d", c.NArg())
	}
	index, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", c.Args().First(), err)
	}
	return index, nil
}
