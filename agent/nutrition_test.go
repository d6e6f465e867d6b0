package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/aguxez/dietlog/logging"
	"github.com/aguxez/dietlog/models"
)

// stubLLM answers every prompt with a fixed response and records the prompts.
type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				s.prompts = append(s.prompts, text.Text)
			}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s.response}}}, nil
}

func (s *stubLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

type mealList []models.Meal

func (m mealList) List() []models.Meal { return m }

type exerciseList []models.Exercise

func (e exerciseList) List() []models.Exercise { return e }

func newTestAgent(llm llms.Model) *NutritionAgent {
	oats := models.Food{ID: 2, Name: "oats", Macros: models.MacroInfo{Calories: 150, Protein: 5, Fat: 3, Carbs: 27}}
	catalog := models.NewFoodCatalog([]models.Food{oats})
	meals := mealList{models.NewMeal([]models.Food{oats, oats}, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))}
	exercises := exerciseList{models.NewExercise("run", "5k", 320, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))}
	return NewNutritionAgent(llm, catalog, meals, exercises, logging.Discard())
}

func TestGenerateMealPlan(t *testing.T) {
	llm := &stubLLM{response: "```json\n{\"plan\": [{\"foodId\": 2, \"food\": \"oats\", \"weight\": \"80g\", \"foodCategory\": \"breakfast\"}],\n\"planExplanation\": \"fibre first\"}\n```"}
	a := newTestAgent(llm)

	plan, err := a.GenerateMealPlan(context.Background())
	require.NoError(t, err)

	require.Len(t, plan.Plan, 1)
	assert.Equal(t, 2, plan.Plan[0].FoodID)
	assert.Equal(t, Breakfast, plan.Plan[0].FoodCategory)
	assert.Equal(t, "fibre first", plan.PlanExplanation)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- 2: oats, 150/5/3/27")
	assert.Contains(t, llm.prompts[0], "- 2024-03-05: oats, oats (300 kcal)")
	assert.Contains(t, llm.prompts[0], "- 2024-03-05: run, 320 kcal burnt")
}

func TestGenerateMealPlan_RemembersPreviousSuggestion(t *testing.T) {
	llm := &stubLLM{response: `{"plan": [], "planExplanation": "rest day"}`}
	a := newTestAgent(llm)

	_, err := a.GenerateMealPlan(context.Background())
	require.NoError(t, err)
	_, err = a.GenerateMealPlan(context.Background())
	require.NoError(t, err)

	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "rest day")
}

func TestGenerateMealPlanFor_UsesGivenDescription(t *testing.T) {
	llm := &stubLLM{response: `{"plan": [], "planExplanation": "rest day"}`}
	a := newTestAgent(llm)

	description := a.DescribeContext()
	assert.Contains(t, description, "- 2: oats, 150/5/3/27")

	plan, err := a.GenerateMealPlanFor(context.Background(), "Food catalog:\n- 9: rice\n")
	require.NoError(t, err)
	assert.Equal(t, "rest day", plan.PlanExplanation)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "- 9: rice")
	assert.NotContains(t, llm.prompts[0], "oats")
}

func TestGenerateMealPlan_BadJSON(t *testing.T) {
	a := newTestAgent(&stubLLM{response: "I would suggest oats."})

	_, err := a.GenerateMealPlan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshalling response")
}

func TestGenerateMealPlan_LLMError(t *testing.T) {
	a := newTestAgent(&stubLLM{err: errors.New("rate limited")})

	_, err := a.GenerateMealPlan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripMarkup("```json\n{\"a\": 1}\n```\n"))
	assert.Equal(t, `{}`, stripMarkup(" {}\n"))
}

func TestLastN(t *testing.T) {
	assert.Equal(t, []int{3, 4}, lastN([]int{1, 2, 3, 4}, 2))
	assert.Equal(t, []int{1}, lastN([]int{1}, 5))
}
