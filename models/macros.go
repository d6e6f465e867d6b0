package models

// MacroInfo holds the nutritional attributes of a food, or the sum of several.
type MacroInfo struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
}

// Add returns the element-wise sum of m and o.
func (m MacroInfo) Add(o MacroInfo) MacroInfo {
	return MacroInfo{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Carbs:    m.Carbs + o.Carbs,
	}
}
