package models

import (
	"errors"
	"fmt"
)

// Level is a two-step rating used for both effort and impact.
type Level string

const (
	LevelLow  Level = "low"
	LevelHigh Level = "high"
)

var ErrInvalidLevel = errors.New("invalid level")

// ParseLevel validates a level. An empty value means low.
func ParseLevel(raw string) (Level, error) {
	switch Level(raw) {
	case "", LevelLow:
		return LevelLow, nil
	case LevelHigh:
		return LevelHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, raw)
}

// Category is a cell of the impact/effort matrix.
type Category string

const (
	CategoryQuickWin     Category = "quickWin"
	CategoryMajorProject Category = "majorProject"
	CategoryFillIn       Category = "fillIn"
	CategoryThankless    Category = "thankless"
)

// Categories lists the matrix cells in display order.
var Categories = []Category{CategoryQuickWin, CategoryMajorProject, CategoryFillIn, CategoryThankless}

// CategoryInfo is the display metadata for a category.
type CategoryInfo struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryQuickWin:     {Label: "Quick Win", Description: "High Impact, Low Effort"},
	CategoryMajorProject: {Label: "Major Project", Description: "High Impact, High Effort"},
	CategoryFillIn:       {Label: "Fill In", Description: "Low Impact, Low Effort"},
	CategoryThankless:    {Label: "Slog", Description: "Low Impact, High Effort"},
}

// Info returns the label and description of the category.
func (c Category) Info() CategoryInfo {
	return categoryInfo[c]
}

// Classify maps impact and effort onto the matrix. Anything that is not one of the
// first three cells lands in thankless.
func Classify(impact, effort Level) Category {
	switch {
	case impact == LevelHigh && effort == LevelLow:
		return CategoryQuickWin
	case impact == LevelHigh && effort == LevelHigh:
		return CategoryMajorProject
	case impact == LevelLow && effort == LevelLow:
		return CategoryFillIn
	}
	return CategoryThankless
}
