package nutrition

import (
	"fmt"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/responses"
	"strconv"
	"strings"
)

const (
	defaultDuration     = 1
	defaultDietPace     = "medium"
	defaultMealQuantity = 3
	unknownAge          = "unknown"
	dietOrderDateLayout = "2006-01-02"
)

// DietPromptParams holds the form input of a diet request after defaults
// and derived body metrics have been applied.
type DietPromptParams struct {
	Duration       int
	DietPace       string
	Age            *int
	Gender         string
	Weight         *float64
	Height         *float64
	BMI            *float64
	Waist          *float64
	Neck           *float64
	BodyFat        *float64
	ActivityLevel  string
	WorkoutType    string
	Goal           string
	DesiredWeight  *float64
	MealQuantity   int
	SelectedMeals  []string
	ExoticAllowed  bool
	Budget         *float64
	LoveProducts   []string
	UnloveProducts []string
	Restrictions   []string
}

type measureLine struct {
	key   string
	label string
}

type measureSection struct {
	title string
	lines []measureLine
}

var measureSections = []measureSection{
	{"Vital Signs", []measureLine{
		{responses.MeasureSystolicBP, "Systolic BP"},
		{responses.MeasureDiastolicBP, "Diastolic BP"},
	}},
	{"Diabetes Management", []measureLine{
		{responses.MeasureFastingGlucose, "Fasting Glucose"},
		{responses.MeasureHbA1c, "HbA1c"},
	}},
	{"Lipid Profile", []measureLine{
		{responses.MeasureLDL, "LDL Cholesterol"},
		{responses.MeasureHDL, "HDL Cholesterol"},
		{responses.MeasureTriglycerides, "Triglycerides"},
	}},
	{"Kidney Function", []measureLine{
		{responses.MeasureCreatinine, "Creatinine"},
		{responses.MeasureBUN, "BUN"},
		{responses.MeasureEGFR, "eGFR"},
	}},
	{"Electrolytes", []measureLine{
		{responses.MeasureSodium, "Sodium"},
		{responses.MeasurePotassium, "Potassium"},
	}},
	{"Liver Function", []measureLine{
		{responses.MeasureALT, "ALT"},
		{responses.MeasureAST, "AST"},
	}},
	{"Nutritional Status", []measureLine{
		{responses.MeasureAlbumin, "Albumin"},
		{responses.MeasurePrealbumin, "Prealbumin"},
		{responses.MeasureINR, "INR"},
	}},
	{"Nutritional Markers", []measureLine{
		{responses.MeasureVitaminD, "Vitamin D"},
		{responses.MeasureVitaminB12, "Vitamin B12"},
		{responses.MeasureIronStudies, "Iron Studies"},
	}},
	{"Special Considerations", []measureLine{
		{responses.MeasurePregnancyStatus, "Pregnancy Status"},
		{responses.MeasureSwallowingStatus, "Swallowing Status"},
		{responses.MeasureFluidIntake, "Fluid Intake"},
		{responses.MeasureUrineOutput, "Urine Output"},
		{responses.MeasureREE, "Resting Energy Expenditure"},
	}},
}

// BuildDietPrompt renders the diet plan request sent to the model. info may
// be nil when no patient context is available.
func BuildDietPrompt(params DietPromptParams, info *responses.PatientInfo) string {
	params = params.withDefaults()
	if info == nil {
		info = &responses.PatientInfo{}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %d-days %s-paced diet plan for a %s-year-old %s based on:\n",
		params.Duration, params.DietPace, formatAge(params.Age), params.Gender)

	if params.Gender == constvars.FhirGenderMale {
		b.WriteString("♂ Male Profile:\n")
	} else {
		b.WriteString("♀ Female Profile:\n")
	}
	fmt.Fprintf(&b, "- Current Weight: %s kg\n", formatOptionalFloat(params.Weight))
	fmt.Fprintf(&b, "- Height: %s cm\n", formatOptionalFloat(params.Height))
	fmt.Fprintf(&b, "- BMI: %s\n", formatOptionalFloat(params.BMI))
	if params.Waist != nil && params.Neck != nil {
		fmt.Fprintf(&b, "- Waist: %s (cm)\n", formatFloat(*params.Waist))
		fmt.Fprintf(&b, "- Neck: %s (cm)\n", formatFloat(*params.Neck))
		fmt.Fprintf(&b, "- Body Fat: %s\n", formatOptionalFloat(params.BodyFat))
	}

	b.WriteString("- Activity Level: " + params.ActivityLevel)
	if params.WorkoutType != "" {
		b.WriteString(" (" + params.WorkoutType + ")")
	}
	b.WriteString("\n- Goal: " + params.Goal)
	if params.DesiredWeight != nil {
		b.WriteString(" → Target: " + formatFloat(*params.DesiredWeight) + "kg")
	}
	b.WriteString("\n\n")

	b.WriteString("Nutritional Requirements:\n")
	fmt.Fprintf(&b, "- Meals/Day: %d", params.MealQuantity)
	if len(params.SelectedMeals) > 0 {
		b.WriteString(" (" + strings.Join(params.SelectedMeals, ", ") + ")")
	}
	b.WriteString("\n- Calories/Day: auto-calculated\n")
	if params.ExoticAllowed {
		b.WriteString("- Includes exotic ingredients\n")
	} else {
		b.WriteString("- Excludes exotic ingredients\n")
	}
	if params.Budget != nil && *params.Budget > 0 {
		fmt.Fprintf(&b, "- Budget: $%s/week\n", formatFloat(*params.Budget))
	}
	b.WriteString("\n")

	b.WriteString("Food Preferences:\n")
	if len(params.LoveProducts) > 0 {
		b.WriteString("Loved: " + strings.Join(params.LoveProducts, ", ") + " (use them often, but not always)\n")
	} else {
		b.WriteString("Loved: None\n")
	}
	avoid := append(append([]string{}, params.UnloveProducts...), info.AllergyData...)
	b.WriteString("Avoid: " + joinOrNone(avoid) + "\n\n")

	b.WriteString("Health Considerations:\n")
	if len(info.ConditionData) == 0 {
		b.WriteString("- No significant medical conditions\n")
	}
	for _, condition := range info.ConditionData {
		fmt.Fprintf(&b, "- %s (%s)\n", condition.Name, condition.Status)
	}
	if len(info.MedicationData) > 0 {
		b.WriteString("Current Medications:\n")
		for _, medication := range info.MedicationData {
			b.WriteString(derefString(medication.Name) + "\n")
		}
	}

	writeMeasureSections(&b, info.MeasureData)
	writeDietOrders(&b, info.DietData)

	b.WriteString("\nSpecial Requirements:\n")
	if len(params.Restrictions) == 0 {
		b.WriteString("- None\n")
	}
	for _, restriction := range params.Restrictions {
		b.WriteString("- " + restriction + "\n")
	}

	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. Exact gram measurements for all portions\n")
	b.WriteString("2. Calorie estimates per meal\n")
	b.WriteString("3. Insulin dosing recommendations")
	if onInsulin(info.MedicationData) {
		b.WriteString(" (adjust for current insulin regimen)")
	}
	b.WriteString("\n4. Meal prep instructions\n")

	return b.String()
}

func (p DietPromptParams) withDefaults() DietPromptParams {
	if p.Duration <= 0 {
		p.Duration = defaultDuration
	}
	if p.DietPace == "" {
		p.DietPace = defaultDietPace
	}
	if p.MealQuantity <= 0 {
		p.MealQuantity = defaultMealQuantity
	}
	if len(p.SelectedMeals) > p.MealQuantity {
		p.SelectedMeals = p.SelectedMeals[:p.MealQuantity]
	}
	return p
}

func writeMeasureSections(b *strings.Builder, measures responses.MeasureData) {
	for _, section := range measureSections {
		var lines []string
		for _, line := range section.lines {
			if value := measures.Value(line.key); value != "" {
				lines = append(lines, "- "+line.label+": "+value)
			}
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n" + section.title + ":\n")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}
}

func writeDietOrders(b *strings.Builder, orders []responses.PatientDietOrder) {
	if len(orders) == 0 {
		return
	}
	b.WriteString("\nCurrent Diet Orders:\n")

	for _, order := range orders {
		details := nonEmptyLines(
			labelled("Type", derefString(order.OrderType)),
			labelled("Name", derefString(order.DietName)),
			labelled("Instructions", derefString(order.DietInstruction)),
			labelled("Date", formatOrderDate(derefString(order.DateTime))),
		)
		writeBlock(b, "Order Details", details)

		specifications := nonEmptyLines(
			labelled("Oral Diet", rawJSON(order.OralDiet)),
			labelled("Supplements", rawJSON(order.Supplement)),
			labelled("Enteral Formula", rawJSON(order.EnteralFormula)),
		)
		writeBlock(b, "Specifications", specifications)

		administration := nonEmptyLines(
			labelled("Schedule", rawJSON(order.ScheduledTime)),
			labelled("Type", rawJSON(order.IntakeType)),
		)
		writeBlock(b, "Administration", administration)

		if instruction := derefString(order.PatientInstruction); instruction != "" {
			writeBlock(b, "Patient Instructions", []string{instruction})
		}
	}
}

func writeBlock(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n" + title + ":\n")
	b.WriteString(strings.Join(lines, "\n") + "\n")
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return "- " + label + ": " + value
}

func nonEmptyLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// formatOrderDate keeps the calendar date of a FHIR dateTime.
func formatOrderDate(value string) string {
	if len(value) >= len(dietOrderDateLayout) {
		return value[:len(dietOrderDateLayout)]
	}
	return value
}

// rawJSON renders a FHIR element the way it was received; a JSON string is
// shown without quotes.
func rawJSON(raw []byte) string {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(value); err == nil && strings.HasPrefix(value, `"`) {
		return unquoted
	}
	return value
}

func onInsulin(medications []responses.PatientMedication) bool {
	for _, medication := range medications {
		if strings.Contains(strings.ToLower(derefString(medication.Name)), "insulin") {
			return true
		}
	}
	return false
}

func formatAge(age *int) string {
	if age == nil {
		return unknownAge
	}
	return strconv.Itoa(*age)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return formatFloat(*value)
}

func joinOrNone(values []string) string {
	filtered := nonEmptyLines(values...)
	if len(filtered) == 0 {
		return "None"
	}
	return strings.Join(filtered, ", ")
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
