package command

import "github.com/aguxez/dietlog/models"

// defaultFoods is written to the catalog file the first time dietlog runs.
// Values are per typical serving.
func defaultFoods() []models.Food {
	return []models.Food{
		{ID: 0, Name: "white rice (1 cup)", Macros: models.MacroInfo{Calories: 205, Protein: 4.3, Fat: 0.4, Carbs: 45}},
		{ID: 1, Name: "chicken breast (100g)", Macros: models.MacroInfo{Calories: 165, Protein: 31, Fat: 3.6, Carbs: 0}},
		{ID: 2, Name: "rolled oats (40g)", Macros: models.MacroInfo{Calories: 150, Protein: 5, Fat: 3, Carbs: 27}},
		{ID: 3, Name: "egg (large)", Macros: models.MacroInfo{Calories: 72, Protein: 6.3, Fat: 4.8, Carbs: 0.4}},
		{ID: 4, Name: "banana (medium)", Macros: models.MacroInfo{Calories: 105, Protein: 1.3, Fat: 0.4, Carbs: 27}},
		{ID: 5, Name: "apple (medium)", Macros: models.MacroInfo{Calories: 95, Protein: 0.5, Fat: 0.3, Carbs: 25}},
		{ID: 6, Name: "whole wheat bread (slice)", Macros: models.MacroInfo{Calories: 81, Protein: 4, Fat: 1.1, Carbs: 14}},
		{ID: 7, Name: "milk (1 cup)", Macros: models.MacroInfo{Calories: 103, Protein: 8, Fat: 2.4, Carbs: 12}},
		{ID: 8, Name: "salmon fillet (100g)", Macros: models.MacroInfo{Calories: 208, Protein: 20, Fat: 13, Carbs: 0}},
		{ID: 9, Name: "broccoli (1 cup)", Macros: models.MacroInfo{Calories: 31, Protein: 2.5, Fat: 0.3, Carbs: 6}},
		{ID: 10, Name: "greek yogurt (170g)", Macros: models.MacroInfo{Calories: 100, Protein: 17, Fat: 0.7, Carbs: 6}},
		{ID: 11, Name: "peanut butter (2 tbsp)", Macros: models.MacroInfo{Calories: 188, Protein: 8, Fat: 16, Carbs: 6}},
	}
}
