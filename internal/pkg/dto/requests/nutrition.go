package requests

type GenerateDiet struct {
	PatientID      string   `json:"patientId" validate:"omitempty,fhir_id"`
	Age            *int     `json:"age" validate:"omitempty,gte=0,lte=130"`
	Gender         string   `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Duration       int      `json:"duration" validate:"omitempty,gte=1,lte=30"`
	DietPace       string   `json:"dietPace" validate:"omitempty,diet_pace"`
	Weight         *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height         *float64 `json:"height" validate:"omitempty,gt=0"`
	BMI            *float64 `json:"bmi" validate:"omitempty,gt=0"`
	Waist          *float64 `json:"waist" validate:"omitempty,gt=0"`
	Neck           *float64 `json:"neck" validate:"omitempty,gt=0"`
	Hip            *float64 `json:"hip" validate:"omitempty,gt=0"`
	BodyFat        *float64 `json:"bodyFat" validate:"omitempty,gt=0,lt=100"`
	ActivityLevel  string   `json:"activityLevel" validate:"omitempty,oneof=sedentary light moderate active"`
	WorkoutType    string   `json:"workoutType"`
	Goal           string   `json:"goal" validate:"omitempty,oneof=cut gain maintain improve"`
	DesiredWeight  *float64 `json:"desiredWeight" validate:"omitempty,gt=0"`
	MealQuantity   int      `json:"mealQuantity" validate:"omitempty,gte=2,lte=6"`
	SelectedMeals  []string `json:"selectedMeals" validate:"omitempty,dive,meal_type"`
	ExoticAllowed  bool     `json:"exoticAllowed"`
	Budget         *float64 `json:"budget" validate:"omitempty,gte=0"`
	LoveProducts   []string `json:"loveProducts"`
	UnloveProducts []string `json:"unloveProducts"`
	Restrictions   []string `json:"restrictions"`

	// DietDescription is a prompt prepared by an older client; it is sent as is.
	DietDescription string `json:"dietDescription"`
}

type DiabetesParameters struct {
	DiabetesType       string `json:"diabetesType" validate:"omitempty,diabetes_type"`
	CurrentGlucose     string `json:"currentGlucose" validate:"omitempty,numeric"`
	TargetGlucose      string `json:"targetGlucose" validate:"omitempty,numeric"`
	InsulinSensitivity string `json:"insulinSensitivity" validate:"omitempty,numeric"`
	InsulinRatio       string `json:"insulinRatio" validate:"omitempty,numeric"`
	InsulinType        string `json:"insulinType" validate:"omitempty,insulin_type"`
	FastingBloodSugar  string `json:"fastingBloodSugar" validate:"omitempty,numeric"`
	HemoglobinA1c      string `json:"hemoglobinA1c" validate:"omitempty,numeric"`
}

type AnalyzeImage struct {
	PatientID     string             `json:"patientId" validate:"omitempty,fhir_id"`
	Allergies     []string           `json:"allergies"`
	Diabetes      DiabetesParameters `json:"diabetes"`
	Image         []byte             `json:"-" validate:"required"`
	ImageFileName string             `json:"-"`

	// SystemPrompt is a prompt prepared by an older client; it replaces the built one.
	SystemPrompt string `json:"systemPrompt"`
}

type BodyMetrics struct {
	Gender string   `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Weight *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" validate:"required,gt=0"`
	Waist  *float64 `json:"waist" validate:"omitempty,gt=0"`
	Neck   *float64 `json:"neck" validate:"omitempty,gt=0"`
	Hip    *float64 `json:"hip" validate:"omitempty,gt=0"`
}
