package models

import (
    "time"

    "gorm.io/gorm"
)

// One slot of a generated weekly plan. The whole set of rows for a user is
// replaced when a new plan is generated; single rows are replaced on swap.
type PlannedMeal struct {
    gorm.Model
    UserID uint   `gorm:"index;not null"`
    Day    string // "Monday"…"Sunday"
    Slot   string // "Breakfast" | "Lunch" | "Dinner" | "Meal N"

    Name          string
    SpoonacularID int64  // external recipe id, 0 when unknown
    Calories      int
    Protein       string // formatted, e.g. "37g"
    Carbs         string
    Fats          string
    ImageURL      string

    Eaten   bool
    EatenAt *time.Time
}
