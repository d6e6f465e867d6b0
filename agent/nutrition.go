package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"

	"github.com/aguxez/dietlog/models"
)

// historyLimit caps how many recent meals and exercises go into the prompt.
const historyLimit = 14

// FoodSource lists the foods the plan may draw from.
type FoodSource interface {
	All() []models.Food
}

// MealSource lists recorded meals, oldest first.
type MealSource interface {
	List() []models.Meal
}

// ExerciseSource lists recorded exercises, oldest first.
type ExerciseSource interface {
	List() []models.Exercise
}

// NutritionAgent suggests meal plans from the food catalog and the user's
// recent history. It remembers its last few suggestions.
type NutritionAgent struct {
	chain *chains.LLMChain

	// memMu serializes plan generation; the window buffer is not safe for
	// concurrent use.
	memMu        sync.Mutex
	bufferMemory *memory.ConversationWindowBuffer
	foods        FoodSource
	meals        MealSource
	exercises    ExerciseSource
	logger       *slog.Logger
}

type FoodCategory string

const (
	Breakfast FoodCategory = "breakfast"
	Lunch     FoodCategory = "lunch"
	Dinner    FoodCategory = "dinner"
	Snack     FoodCategory = "snack"
)

type MealPlanFood struct {
	FoodID          int          `json:"foodId" yaml:"food_id"`
	Food            string       `json:"food" yaml:"food"`
	Weight          string       `json:"weight" yaml:"weight"`
	Macros          string       `json:"macros" yaml:"macros"`
	FoodExplanation string       `json:"foodExplanation" yaml:"food_explanation"`
	FoodCategory    FoodCategory `json:"foodCategory" yaml:"food_category"`
}

type MealPlanResponse struct {
	Plan            []MealPlanFood `json:"plan" yaml:"plan"`
	PlanExplanation string         `json:"planExplanation" yaml:"plan_explanation"`
}

const promptTemplate = `
You are a personal nutritionist. Build a one-day meal plan using the context below.

{{.CombinedInput}}

The plan must:
1. Only use foods from the catalog, referring to each by its id.
2. Balance the day's calories against the recent exercise.
3. Avoid repeating yesterday's meals where the catalog allows it.

Give portions in grams.

Stick to this JSON format for the output.

{
	"plan": [
		{
			"foodId": number, // The catalog id
			"food": string, // The food name
			"weight": string, // The weight of the food in grams
			"macros": string, // Protein, fat, carbs, and calories
			"foodExplanation": string, // Why this food was chosen
			"foodCategory": string // breakfast, lunch, dinner, or snack
		}
	],
	"planExplanation": string // Short explanation of the plan, plain text.
}
`

func NewNutritionAgent(llm llms.Model, foods FoodSource, meals MealSource, exercises ExerciseSource, logger *slog.Logger) *NutritionAgent {
	// Only the last few suggestions are kept so the prompt stays bounded.
	bufferMem := memory.NewConversationWindowBuffer(5)

	chain := chains.NewLLMChain(
		llm,
		prompts.NewPromptTemplate(promptTemplate, []string{"CombinedInput"}),
	)

	if logger == nil {
		logger = slog.Default()
	}

	return &NutritionAgent{
		chain:        chain,
		bufferMemory: bufferMem,
		foods:        foods,
		meals:        meals,
		exercises:    exercises,
		logger:       logger,
	}
}

// GenerateMealPlan reads the current catalog and history and asks the model
// for a plan.
func (n *NutritionAgent) GenerateMealPlan(ctx context.Context) (MealPlanResponse, error) {
	return n.GenerateMealPlanFor(ctx, n.DescribeContext())
}

// GenerateMealPlanFor asks the model for a plan from a description produced
// earlier by DescribeContext. It does not read the sources.
func (n *NutritionAgent) GenerateMealPlanFor(ctx context.Context, description string) (MealPlanResponse, error) {
	n.memMu.Lock()
	defer n.memMu.Unlock()

	history, err := n.bufferMemory.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return MealPlanResponse{}, fmt.Errorf("loading memory variables: %w", err)
	}

	combinedInput := fmt.Sprintf("%s\nPrevious suggestions: %v",
		description, history["history"])

	input := map[string]any{
		"CombinedInput": combinedInput,
	}

	result, err := chains.Call(ctx, n.chain, input)
	if err != nil {
		return MealPlanResponse{}, fmt.Errorf("calling chain: %w", err)
	}

	if err := n.bufferMemory.SaveContext(ctx, input, result); err != nil {
		n.logger.Warn("could not save meal plan to memory", "error", err)
	}

	responseText, ok := result[n.chain.OutputKey].(string)
	if !ok {
		return MealPlanResponse{}, fmt.Errorf("unexpected chain output %T", result[n.chain.OutputKey])
	}

	var parsedResponse MealPlanResponse
	if err := json.Unmarshal([]byte(stripMarkup(responseText)), &parsedResponse); err != nil {
		return MealPlanResponse{}, fmt.Errorf("unmarshalling response: %w", err)
	}

	return parsedResponse, nil
}

// DescribeContext renders the catalog and recent history as prompt text.
func (n *NutritionAgent) DescribeContext() string {
	var b strings.Builder

	b.WriteString("Food catalog (id: name, kcal/protein/fat/carbs):\n")
	for _, f := range n.foods.All() {
		fmt.Fprintf(&b, "- %d: %s, %g/%g/%g/%g\n", f.ID, f.Name,
			f.Macros.Calories, f.Macros.Protein, f.Macros.Fat, f.Macros.Carbs)
	}

	b.WriteString("Recent meals:\n")
	for _, m := range lastN(n.meals.List(), historyLimit) {
		names := make([]string, len(m.Foods))
		for i, f := range m.Foods {
			names[i] = f.Name
		}
		fmt.Fprintf(&b, "- %s: %s (%g kcal)\n", m.Date.Format("2006-01-02"), strings.Join(names, ", "), m.Totals().Calories)
	}

	b.WriteString("Recent exercise:\n")
	for _, e := range lastN(n.exercises.List(), historyLimit) {
		fmt.Fprintf(&b, "- %s: %s, %g kcal burnt\n", e.Date.Format("2006-01-02"), e.Name, e.CaloriesBurnt)
	}

	return b.String()
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// stripMarkup removes line breaks and markdown code fences models like to
// wrap JSON in.
func stripMarkup(s string) string {
	noLineBreaks := strings.ReplaceAll(s, "\n", "")
	noJsonMarkupStart := strings.ReplaceAll(noLineBreaks, "```json", "")
	noJsonMarkupEnd := strings.ReplaceAll(noJsonMarkupStart, "```", "")

	return strings.TrimSpace(noJsonMarkupEnd)
}
