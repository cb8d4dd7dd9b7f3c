package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null"`
    Password string `gorm:"not null"`

    FirstName string
    LastName  string
    Birthday  time.Time
    Sex       string // "male" | "female"

    // Profile data the calorie target is derived from
    HeightCm      float64
    WeightKg      float64
    ActivityLevel string // sedentary|light|moderate|active|very_active
    Goal          string // lose|maintain|gain
    HealthIssues  string // free text, e.g. "gluten intolerance, diabetes"

    ProfilePicture string

    MFAEnabled bool
    MFACode    string

    ResetToken    string
    ResetTokenExp time.Time
}
