package models

import (
	"strconv"
	"time"
)

// Exercise is one recorded workout.
type Exercise struct {
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description" yaml:"description"`
	CaloriesBurnt float32   `json:"caloriesBurnt" yaml:"calories_burnt"`
	Date          time.Time `json:"date" yaml:"date"`
}

// NewExercise builds an exercise, dropping any time-of-day component from date.
func NewExercise(name, description string, caloriesBurnt float32, date time.Time) Exercise {
	return Exercise{
		Name:          name,
		Description:   description,
		CaloriesBurnt: caloriesBurnt,
		Date:          TruncateDay(date),
	}
}

// Fields returns the exercise as [name, description, calories, date].
// Calories use the shortest form that reads back as the same float32, so 250
// becomes "250" and 320.1 stays "320.1".
func (e Exercise) Fields(dateLayout string) []string {
	return []string{
		e.Name,
		e.Description,
		strconv.FormatFloat(float64(e.CaloriesBurnt), 'f', -1, 32),
		e.Date.Format(dateLayout),
	}
}
