package models

import "errors"

// ErrFoodNotFound is returned when an id has no entry in the food catalog.
var ErrFoodNotFound = errors.New("food not found")

// Food is a catalog entry. Meals reference foods by ID.
type Food struct {
	ID     int       `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Macros MacroInfo `json:"macros" yaml:"macros"`
}
