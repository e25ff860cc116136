package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlan is produced by the external generator; this service only reads it.
type MealPlan struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetCalories  int       `gorm:"not null" json:"target_calories"`
	TargetProtein   int       `gorm:"not null" json:"target_protein"`
	TargetFat       int       `gorm:"not null" json:"target_fat"`
	TargetCarbs     int       `gorm:"not null" json:"target_carbs"`
	Weeks           int       `gorm:"not null;default:1" json:"weeks"`
	AllowRepeatDays bool      `json:"allow_repeat_days"`
	PreferSimple    bool      `json:"prefer_simple"`
	UseInventory    bool      `json:"use_inventory"`
	Days            []MealDay `gorm:"foreignKey:MealPlanID" json:"days"`
	CreatedAt       time.Time `json:"created_at"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealDay is one day of a plan with its aggregate totals.
type MealDay struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MealPlanID    uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_plan_id"`
	WeekNumber    int       `gorm:"not null" json:"week_number"`
	DayNumber     int       `gorm:"not null" json:"day_number"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalFat      float64   `json:"total_fat"`
	TotalCarbs    float64   `json:"total_carbs"`
	Meals         []Meal    `gorm:"foreignKey:MealDayID" json:"meals"`
}

func (MealDay) TableName() string {
	return "meal_days"
}

func (d *MealDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Meal is a slot within a day. Recipe is optional.
type Meal struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MealDayID uuid.UUID  `gorm:"type:uuid;not null;index" json:"meal_day_id"`
	MealType  MealType   `gorm:"type:varchar(16);not null" json:"meal_type"`
	Position  int        `gorm:"not null;default:0" json:"position"`
	Calories  float64    `json:"calories"`
	Protein   float64    `json:"protein"`
	Fat       float64    `json:"fat"`
	Carbs     float64    `json:"carbs"`
	RecipeID  *uuid.UUID `gorm:"type:uuid" json:"recipe_id,omitempty"`
	Recipe    *Recipe    `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (Meal) TableName() string {
	return "meals"
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
