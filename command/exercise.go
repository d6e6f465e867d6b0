package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/aguxez/dietlog/models"
	"github.com/aguxez/dietlog/storage"
)

type exerciseView struct {
	Index         int     `json:"index" yaml:"index"`
	Name          string  `json:"name" yaml:"name"`
	Description   string  `json:"description" yaml:"description"`
	CaloriesBurnt float32 `json:"caloriesBurnt" yaml:"calories_burnt"`
	Date          string  `json:"date" yaml:"date"`
}

func newExerciseView(index int, e models.Exercise) exerciseView {
	return exerciseView{
		Index:         index,
		Name:          e.Name,
		Description:   e.Description,
		CaloriesBurnt: e.CaloriesBurnt,
		Date:          e.Date.Format(storage.DateLayout),
	}
}

// ExerciseCommand returns the exercise command group.
func ExerciseCommand() *cli.Command {
	return &cli.Command{
		Name:  "exercise",
		Usage: "record and inspect exercise",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "record an exercise",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "what you did", Required: true},
					&cli.StringFlag{Name: "description", Usage: "details"},
					&cli.Float64Flag{Name: "calories", Usage: "calories burnt", Required: true},
					&cli.StringFlag{Name: "date", Usage: "date, d/M/yyyy (default: today)"},
				},
				Action: exerciseAdd,
			},
			{
				Name:   "list",
				Usage:  "list exercises with their index",
				Action: exerciseList,
			},
			{
				Name:      "show",
				Usage:     "show one exercise",
				ArgsUsage: "INDEX",
				Action:    exerciseShow,
			},
			{
				Name:      "delete",
				Usage:     "delete an exercise; later exercises move up one index",
				ArgsUsage: "INDEX",
				Action:    exerciseDelete,
			},
		},
	}
}

func exerciseAdd(c *cli.Context) error {
	env := envFrom(c)

	date, err := parseDate(c.String("date"))
	if err != nil {
		return err
	}
	calories := c.Float64("calories")
	if calories < 0 {
		return errors.New("calories must not be negative")
	}

	exercise := models.NewExercise(c.String("name"), c.String("description"), float32(calories), date)
	if err := env.Exercises.Add(exercise); err != nil {
		failure(env.Out, "Could not add exercise to storage!")
		return fmt.Errorf("exercise kept for this session only: %w", err)
	}

	env.Logger.Info("exercise added", "index", env.Exercises.Count()-1)
	notice(env.Out, "Exercise was successfully added! (index %d)", env.Exercises.Count()-1)
	return nil
}

func exerciseList(c *cli.Context) error {
	env := envFrom(c)

	exercises := env.Exercises.List()
	views := make([]exerciseView, len(exercises))
	for i, e := range exercises {
		views[i] = newExerciseView(i, e)
	}

	return render(env.Out, env.Format, views, func(w io.Writer) {
		fmt.Fprintln(w, "INDEX\tDATE\tNAME\tKCAL\tDESCRIPTION")
		for _, v := range views {
			fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%s\n", v.Index, v.Date, v.Name, v.CaloriesBurnt, v.Description)
		}
	})
}

func exerciseShow(c *cli.Context) error {
	env := envFrom(c)

	index, err := parseIndex(c)
	if err != nil {
		return err
	}
	exercise, err := env.Exercises.Get(index)
	if err != nil {
		return err
	}
	view := newExerciseView(index, exercise)

	return render(env.Out, env.Format, view, func(w io.Writer) {
		fmt.Fprintf(w, "Exercise:\t%s\n", view.Name)
		fmt.Fprintf(w, "Description:\t%s\n", view.Description)
		fmt.Fprintf(w, "Calories Burnt:\t%g\n", view.CaloriesBurnt)
		fmt.Fprintf(w, "Date of Exercise:\t%s\n", view.Date)
	})
}

func exerciseDelete(c *cli.Context) error {
	env := envFrom(c)

	index, err := parseIndex(c)
	if err != nil {
		return err
	}
	exercise, err := env.Exercises.Delete(index)
	if err != nil {
		return err
	}

	if err := env.Exercises.Write(); err != nil {
		failure(env.Out, "Exercise was removed for this session but the file could not be updated!")
		return err
	}

	env.Logger.Info("exercise deleted", "index", index)
	notice(env.Out, "Deleted exercise %d (%s).", index, exercise.Name)
	return nil
}
