package command

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/aguxez/dietlog/agent"
	"github.com/aguxez/dietlog/config"
	"github.com/aguxez/dietlog/filewatch"
	"github.com/aguxez/dietlog/models"
	"github.com/aguxez/dietlog/storage"
)

// Env is everything a command needs: settings, the food catalog and the two
// stores. Only one goroutine may use the stores at a time.
type Env struct {
	Config    *config.Config
	Logger    *slog.Logger
	Catalog   *models.FoodCatalog
	Meals     *storage.MealStore
	Exercises *storage.ExerciseStore
	Out       io.Writer
	Format    Format

	// NewLLM builds the model used by suggest and serve.
	NewLLM func(config.LLMConfig) (llms.Model, error)
}

// NewEnv creates the data directory if needed, reads the food catalog
// (seeding it on first run) and loads both stores.
//
// A store that fails to load is kept with whatever it read and a notice is
// printed; the catalog failing to parse is fatal since no meal could resolve.
func NewEnv(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Env, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	env := &Env{
		Config: cfg,
		Logger: logger,
		Out:    out,
		Format: FormatTable,
		NewLLM: newOpenAI,
	}

	foods, err := filewatch.ParseFoods(cfg.FoodsPath())
	if errors.Is(err, fs.ErrNotExist) {
		foods = defaultFoods()
		if err := filewatch.WriteFoods(cfg.FoodsPath(), foods); err != nil {
			return nil, fmt.Errorf("seeding food catalog: %w", err)
		}
		notice(out, "Created food catalog at %s", cfg.FoodsPath())
	} else if err != nil {
		return nil, fmt.Errorf("reading food catalog: %w", err)
	}
	env.Catalog = models.NewFoodCatalog(foods)
	logger.Debug("food catalog loaded", "file", cfg.FoodsPath(), "foods", len(foods))

	meals, err := storage.NewMealStore(cfg.MealsPath(), env.Catalog)
	env.reportLoad("meal", cfg.MealsPath(), meals.Count(), err)
	env.Meals = meals

	exercises, err := storage.NewExerciseStore(cfg.ExercisesPath())
	env.reportLoad("exercise", cfg.ExercisesPath(), exercises.Count(), err)
	env.Exercises = exercises

	return env, nil
}

func (e *Env) reportLoad(kind, path string, loaded int, err error) {
	switch {
	case err == nil:
		e.Logger.Debug("store loaded", "kind", kind, "file", path, "records", loaded)
	case errors.Is(err, fs.ErrNotExist):
		e.Logger.Debug("no store file yet", "kind", kind, "file", path)
	default:
		e.Logger.Warn("store partially loaded", "kind", kind, "file", path, "records", loaded, "error", err)
		failure(e.Out, "Error loading %s storage: %v", kind, err)
	}
}

// Planner builds a meal-plan agent over the env's data. It returns nil when
// no LLM token is configured.
func (e *Env) Planner() (*agent.NutritionAgent, error) {
	if e.Config.LLM.Token == "" {
		return nil, nil
	}
	llm, err := e.NewLLM(e.Config.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating llm client: %w", err)
	}
	return agent.NewNutritionAgent(llm, e.Catalog, e.Meals, e.Exercises, e.Logger), nil
}

func newOpenAI(cfg config.LLMConfig) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.Token),
		openai.WithModel(cfg.Model),
	)
}
