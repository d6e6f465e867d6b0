package storage

import (
	"fmt"
	"strconv"

	"github.com/aguxez/dietlog/models"
)

// ExerciseHeader is the first line of every exercises file.
var ExerciseHeader = []string{"Name", "Description", "Calories", "Date"}

// ExerciseStore holds the recorded exercises and their backing file. It
// follows the same rules as MealStore.
type ExerciseStore struct {
	path      string
	exercises records[models.Exercise]
}

// NewExerciseStore creates a store for path and loads it. As with
// NewMealStore the store is returned even when loading fails.
func NewExerciseStore(path string) (*ExerciseStore, error) {
	s := &ExerciseStore{path: path}
	return s, s.Load()
}

// Path returns the backing file location.
func (s *ExerciseStore) Path() string { return s.path }

// Load reads the backing file and appends its exercises in file order.
func (s *ExerciseStore) Load() error {
	err := readRecords(s.path, func(record []string) error {
		if len(record) < 4 {
			return fmt.Errorf("expected 4 fields, got %d", len(record))
		}

		calories, err := strconv.ParseFloat(record[2], 32)
		if err != nil {
			return fmt.Errorf("parsing calories %s: %w", record[2], err)
		}

		date, err := ParseDate(record[3])
		if err != nil {
			return fmt.Errorf("parsing date %s: %w", record[3], err)
		}

		s.exercises = append(s.exercises, models.NewExercise(record[0], record[1], float32(calories), date))
		return nil
	})
	if err != nil {
		return newLoadError(s.path, err)
	}
	return nil
}

// Write replaces the backing file with the header and every exercise.
func (s *ExerciseStore) Write() error {
	rows := make([][]string, len(s.exercises))
	for i, e := range s.exercises {
		rows[i] = e.Fields(DateLayout)
	}
	if err := writeRecords(s.path, ExerciseHeader, rows); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Add appends exercise and rewrites the backing file. The exercise stays in
// memory when the write fails.
func (s *ExerciseStore) Add(exercise models.Exercise) error {
	s.exercises = append(s.exercises, exercise)
	return s.Write()
}

// Count returns the number of exercises held.
func (s *ExerciseStore) Count() int { return len(s.exercises) }

// List returns the exercises in order. Do not modify the returned slice.
func (s *ExerciseStore) List() []models.Exercise { return s.exercises }

// Get returns the exercise at index.
func (s *ExerciseStore) Get(index int) (models.Exercise, error) {
	return s.exercises.get(index)
}

// Delete removes and returns the exercise at index without persisting.
func (s *ExerciseStore) Delete(index int) (models.Exercise, error) {
	return s.exercises.remove(index)
}
