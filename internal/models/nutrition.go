package models

// NutritionValue is a single nutritional component of a food item
type NutritionValue struct {
	Name  string  `json:"name"`  // e.g. Calories, Protein
	Value float64 `json:"value"` // per serving
	Unit  string  `json:"unit"`  // kcal, g, mg
}

// FoodInformation describes one food item detected in an image
type FoodInformation struct {
	Name        string           `json:"name"`
	Nutritions  []NutritionValue `json:"nutritions"`
	ServingSize float64          `json:"serving_size"`
	ServingUnit string           `json:"serving_unit"` // g or ml
}

// FoodResult is the response shape for the food category
type FoodResult struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    []FoodInformation `json:"data"`
}
