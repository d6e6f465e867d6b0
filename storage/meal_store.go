package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aguxez/dietlog/models"
)

// FoodDelimiter separates food ids inside the foods field of a meal line.
const FoodDelimiter = "-"

// MealHeader is the first line of every meals file.
var MealHeader = []string{"Date", "Foods"}

// FoodResolver looks foods up by id.
type FoodResolver interface {
	Resolve(id int) (models.Food, error)
}

// MealStore holds the recorded meals and their backing file.
type MealStore struct {
	path  string
	foods FoodResolver
	meals records[models.Meal]
}

// NewMealStore creates a store for path and loads it straight away, resolving
// every food id through foods.
//
// The store is always returned, even when loading fails: it then holds the
// meals read before the failing line, and the *LoadError is returned as well
// so the caller can decide whether to carry on with partial data.
func NewMealStore(path string, foods FoodResolver) (*MealStore, error) {
	s := &MealStore{path: path, foods: foods}
	return s, s.Load()
}

// Path returns the backing file location.
func (s *MealStore) Path() string { return s.path }

// Load reads the backing file and appends its meals in file order.
func (s *MealStore) Load() error {
	err := readRecords(s.path, func(record []string) error {
		meal, err := s.parse(record)
		if err != nil {
			return err
		}
		s.meals = append(s.meals, meal)
		return nil
	})
	if err != nil {
		return newLoadError(s.path, err)
	}
	return nil
}

func (s *MealStore) parse(record []string) (models.Meal, error) {
	if len(record) < 2 {
		return models.Meal{}, fmt.Errorf("expected 2 fields, got %d", len(record))
	}

	date, err := ParseDate(record[0])
	if err != nil {
		return models.Meal{}, fmt.Errorf("parsing date %s: %w", record[0], err)
	}

	ids := strings.Split(record[1], FoodDelimiter)
	foods := make([]models.Food, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return models.Meal{}, fmt.Errorf("parsing food id %q: %w", raw, err)
		}
		food, err := s.foods.Resolve(id)
		if err != nil {
			return models.Meal{}, fmt.Errorf("resolving food: %w", err)
		}
		foods = append(foods, food)
	}

	return models.NewMeal(foods, date), nil
}

// Write replaces the backing file with the header and every meal in order.
func (s *MealStore) Write() error {
	rows := make([][]string, len(s.meals))
	for i, m := range s.meals {
		rows[i] = m.Fields(FoodDelimiter, DateLayout)
	}
	if err := writeRecords(s.path, MealHeader, rows); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Add appends meal and rewrites the backing file. If the write fails the meal
// is kept in memory anyway and the *WriteError is returned, so memory and disk
// differ until the next successful Write.
func (s *MealStore) Add(meal models.Meal) error {
	s.meals = append(s.meals, meal)
	return s.Write()
}

// Count returns the number of meals held.
func (s *MealStore) Count() int { return len(s.meals) }

// List returns the meals in order. The slice is the store's own; do not
// modify it.
func (s *MealStore) List() []models.Meal { return s.meals }

// Get returns the meal at index.
func (s *MealStore) Get(index int) (models.Meal, error) {
	return s.meals.get(index)
}

// Delete removes and returns the meal at index. Later meals move down one
// position. The backing file is not touched; call Write to persist.
func (s *MealStore) Delete(index int) (models.Meal, error) {
	return s.meals.remove(index)
}
