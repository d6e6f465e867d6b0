package models

import (
	"strconv"
	"strings"
	"time"
)

// Meal is one eating event: a calendar date and the foods eaten, in the order
// they were recorded. The same food may appear more than once.
type Meal struct {
	Date  time.Time `json:"date" yaml:"date"`
	Foods []Food    `json:"foods" yaml:"foods"`
}

// NewMeal builds a meal, dropping any time-of-day component from date.
func NewMeal(foods []Food, date time.Time) Meal {
	return Meal{Date: TruncateDay(date), Foods: foods}
}

// Fields returns the meal as a [date, food ids] pair ready to be written as
// one line, the ids joined by foodDelimiter in stored order.
func (m Meal) Fields(foodDelimiter, dateLayout string) []string {
	ids := make([]string, len(m.Foods))
	for i, f := range m.Foods {
		ids[i] = strconv.Itoa(f.ID)
	}
	return []string{m.Date.Format(dateLayout), strings.Join(ids, foodDelimiter)}
}

// FoodIDs returns the ids of the meal's foods in stored order.
func (m Meal) FoodIDs() []int {
	ids := make([]int, len(m.Foods))
	for i, f := range m.Foods {
		ids[i] = f.ID
	}
	return ids
}

// Totals sums the macros of every food in the meal.
func (m Meal) Totals() MacroInfo {
	var total MacroInfo
	for _, f := range m.Foods {
		total = total.Add(f.Macros)
	}
	return total
}

// TruncateDay strips the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
