package filewatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aguxez/dietlog/models"
)

// FoodHeader is the required first line of a food catalog file.
var FoodHeader = []string{"Id", "Name", "Calories (kcal)", "Protein (g)", "Fat (g)", "Carbs (g)"}

// ParseFoods reads and parses the food catalog from CSV
func ParseFoods(path string) ([]models.Food, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening foods file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(FoodHeader) {
		return nil, fmt.Errorf("invalid header length: expected %d columns, got %d", len(FoodHeader), len(header))
	}
	for i, h := range header {
		if h != FoodHeader[i] {
			return nil, fmt.Errorf("invalid header: expected %s at position %d, got %s", FoodHeader[i], i, h)
		}
	}

	var foods []models.Food
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		if len(record) != len(FoodHeader) {
			return nil, fmt.Errorf("invalid record length: %v", record)
		}

		id, err := strconv.Atoi(record[0])
		if err != nil || id < 0 {
			return nil, fmt.Errorf("parsing id %s: expected a non-negative integer", record[0])
		}

		var macros [4]float64
		for i := range macros {
			v, err := strconv.ParseFloat(record[i+2], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s %s: %w", FoodHeader[i+2], record[i+2], err)
			}
			macros[i] = v
		}

		foods = append(foods, models.Food{
			ID:   id,
			Name: record[1],
			Macros: models.MacroInfo{
				Calories: macros[0],
				Protein:  macros[1],
				Fat:      macros[2],
				Carbs:    macros[3],
			},
		})
	}

	return foods, nil
}

// WriteFoods writes foods to path in the format ParseFoods reads. It is used
// to seed an empty catalog.
func WriteFoods(path string, foods []models.Food) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating foods file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(FoodHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, food := range foods {
		record := []string{
			strconv.Itoa(food.ID),
			food.Name,
			formatFloat(food.Macros.Calories),
			formatFloat(food.Macros.Protein),
			formatFloat(food.Macros.Fat),
			formatFloat(food.Macros.Carbs),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
