package responses

type BodyMetrics struct {
	BMI         *float64 `json:"bmi"`
	BMICategory string   `json:"bmiCategory,omitempty"`
	BodyFat     *float64 `json:"bodyFat"`
}
