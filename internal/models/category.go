package models

import "fmt"

// Category selects which analysis the model is asked to perform
type Category string

const (
	CategoryFood    Category = "food"
	CategoryMedical Category = "medical"
)

// ParseCategory converts a form value into a Category
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFood, CategoryMedical:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

func (c Category) String() string { return string(c) }
