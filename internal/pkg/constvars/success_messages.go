package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GenerateDietSuccessMessage   = "diet plan generated successfully"
	AnalyzeImageSuccessMessage   = "meal image analyzed successfully"
	GetPatientInfoSuccessMessage = "get patient info successfully"
	BodyMetricsSuccessMessage    = "body metrics calculated successfully"
)
