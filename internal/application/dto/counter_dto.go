package dto

// CreateCounterRequest body para POST /api/counters (configuración de correlativos).
type CreateCounterRequest struct {
	SalePointID             string `json:"sale_point_id"`
	DocumentTypeID          string `json:"document_type_id"`
	InitialNumberAuthorized int64  `json:"initial_number_authorized"`
	FinalNumberAuthorized   int64  `json:"final_number_authorized"`
	Serial                  string `json:"serial,omitempty"`
	PrintCustomFormatID     string `json:"print_custom_format_id,omitempty"`
}

// UpdateCounterRequest actualiza el rango autorizado o la serie.
// El último número emitido no es editable por esta vía.
type UpdateCounterRequest struct {
	InitialNumberAuthorized int64  `json:"initial_number_authorized"`
	FinalNumberAuthorized   int64  `json:"final_number_authorized"`
	Serial                  string `json:"serial,omitempty"`
	PrintCustomFormatID     string `json:"print_custom_format_id,omitempty"`
}

// CounterResponse configuración de correlativo en respuestas.
type CounterResponse struct {
	ID                      string `json:"id"`
	OrganizationID          string `json:"organization_id"`
	SalePointID             string `json:"sale_point_id"`
	DocumentTypeID          string `json:"document_type_id"`
	InitialNumberAuthorized int64  `json:"initial_number_authorized"`
	FinalNumberAuthorized   int64  `json:"final_number_authorized"`
	LatestNumberIssued      int64  `json:"latest_number_issued"`
	Serial                  string `json:"serial,omitempty"`
	PrintCustomFormatID     string `json:"print_custom_format_id,omitempty"`
}
