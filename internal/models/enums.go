package models

// Goal is the user's dietary objective. It selects the KBJU formula branch.
type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalMuscleGain Goal = "muscle_gain"
)

func (g Goal) String() string { return string(g) }

func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain:
		return true
	}
	return false
}

// Location is where an inventory item is stored.
type Location string

const (
	LocationFridge  Location = "fridge"
	LocationFreezer Location = "freezer"
	LocationPantry  Location = "pantry"
	LocationOther   Location = "other"
)

// Locations lists every storage location in display order.
var Locations = []Location{LocationFridge, LocationFreezer, LocationPantry, LocationOther}

func (l Location) String() string { return string(l) }

func (l Location) IsValid() bool {
	switch l {
	case LocationFridge, LocationFreezer, LocationPantry, LocationOther:
		return true
	}
	return false
}

// TagType groups tags for presentation. Exclusion does not depend on it.
type TagType string

const (
	TagTypeAllergen   TagType = "allergen"
	TagTypeDiet       TagType = "diet"
	TagTypePreference TagType = "preference"
)

func (t TagType) String() string { return string(t) }

func (t TagType) IsValid() bool {
	switch t {
	case TagTypeAllergen, TagTypeDiet, TagTypePreference:
		return true
	}
	return false
}

// MealType is the slot a meal occupies within a day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}
