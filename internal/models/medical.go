package models

// PatientDetails holds whatever patient information the report shows.
// Every field is optional since reports vary.
type PatientDetails struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

// TestResult is one measured parameter of a diagnostic test
type TestResult struct {
	Value          any    `json:"value"` // number or text as printed
	ReferenceRange string `json:"reference_range"`
	Status         string `json:"status"` // Normal, High, Low, ...
}

// DiagnosticTest groups the results of a single test keyed by parameter name
type DiagnosticTest struct {
	TestName     string                `json:"test_name"`
	Results      map[string]TestResult `json:"results"`
	Observations *string               `json:"observations,omitempty"`
}

// MedicalReport is the typed view of a medical result's data
type MedicalReport struct {
	PatientDetails  *PatientDetails  `json:"patient_details,omitempty"`
	DiagnosticTests []DiagnosticTest `json:"diagnostic_tests"`
	DoctorNotes     *string          `json:"doctor_notes,omitempty"`
}

// MedicalResult is the response shape for the medical category. Data is
// kept as an open mapping because the model output is not re-validated.
type MedicalResult struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}
