package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

// SuggestCommand returns the meal-plan suggestion command.
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:   "suggest",
		Usage:  "ask the configured LLM for a one-day meal plan",
		Action: suggest,
	}
}

func suggest(c *cli.Context) error {
	env := envFrom(c)

	planner, err := env.Planner()
	if err != nil {
		return err
	}
	if planner == nil {
		return errors.New("no LLM token configured; set llm.token or DIETLOG_LLM_TOKEN")
	}

	plan, err := planner.GenerateMealPlan(c.Context)
	if err != nil {
		return err
	}

	return render(env.Out, env.Format, plan, func(w io.Writer) {
		fmt.Fprintln(w, "WHEN\tID\tFOOD\tWEIGHT\tMACROS")
		for _, f := range plan.Plan {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", f.FoodCategory, f.FoodID, f.Food, f.Weight, f.Macros)
		}
		fmt.Fprintf(w, "\n%s\n", plan.PlanExplanation)
	})
}
