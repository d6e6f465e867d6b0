package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aguxez/dietlog/agent"
	"github.com/aguxez/dietlog/models"
)

// MealPlanner builds a plan in two steps: DescribeContext reads the stores
// and runs under the handler's lock, GenerateMealPlanFor calls the model and
// runs outside it.
type MealPlanner interface {
	DescribeContext() string
	GenerateMealPlanFor(ctx context.Context, description string) (agent.MealPlanResponse, error)
}

type MealLister interface {
	List() []models.Meal
}

type ExerciseLister interface {
	List() []models.Exercise
}

type FoodLister interface {
	All() []models.Food
}

// IndexedMeal is a meal together with its current store position.
type IndexedMeal struct {
	Index int `json:"index"`
	models.Meal
	Totals models.MacroInfo `json:"totals"`
}

// IndexedExercise is an exercise together with its current store position.
type IndexedExercise struct {
	Index int `json:"index"`
	models.Exercise
}

// Handler serves the recorded data as JSON. Reads are serialized with mu
// because the stores do no locking of their own.
type Handler struct {
	mu        *sync.Mutex
	meals     MealLister
	exercises ExerciseLister
	foods     FoodLister
	planner   MealPlanner
	logger    *slog.Logger
}

// NewHandler builds a Handler. planner may be nil, in which case /mealplan
// answers 503. mu must be held by anything else touching the stores.
func NewHandler(mu *sync.Mutex, meals MealLister, exercises ExerciseLister, foods FoodLister, planner MealPlanner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		mu:        mu,
		meals:     meals,
		exercises: exercises,
		foods:     foods,
		planner:   planner,
		logger:    logger,
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /meals", h.HandleMeals)
	mux.HandleFunc("GET /exercises", h.HandleExercises)
	mux.HandleFunc("GET /foods", h.HandleFoods)
	mux.HandleFunc("GET /mealplan", h.HandleMealPlanRequest)
	return mux
}

func (h *Handler) HandleMeals(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	meals := h.meals.List()
	out := make([]IndexedMeal, len(meals))
	for i, m := range meals {
		out[i] = IndexedMeal{Index: i, Meal: m, Totals: m.Totals()}
	}
	h.mu.Unlock()

	h.writeJSON(w, out)
}

func (h *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	exercises := h.exercises.List()
	out := make([]IndexedExercise, len(exercises))
	for i, e := range exercises {
		out[i] = IndexedExercise{Index: i, Exercise: e}
	}
	h.mu.Unlock()

	h.writeJSON(w, out)
}

func (h *Handler) HandleFoods(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.foods.All())
}

func (h *Handler) HandleMealPlanRequest(w http.ResponseWriter, r *http.Request) {
	if h.planner == nil {
		http.Error(w, "meal planning is not configured", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("generating meal plan")

	h.mu.Lock()
	description := h.planner.DescribeContext()
	h.mu.Unlock()

	planResponse, err := h.planner.GenerateMealPlanFor(r.Context(), description)
	if err != nil {
		h.logger.Error("meal plan failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, planResponse)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("writing response", "error", err)
	}
}
