package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldPeriodID  = "period_id"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldRows      = "rows"
	FieldValid     = "valid"
	FieldInvalid   = "invalid"
	FieldImported  = "imported"
	FieldWarnings  = "warnings"
	FieldEncoding  = "encoding"
	FieldFormat    = "format"
	FieldRecords   = "records"
)

const (
	ComponentApp            = "app"
	ComponentHTTP           = "http"
	ComponentIngestion      = "ingestion"
	ComponentReconciliation = "reconciliation"
	ComponentExport         = "export"
	ComponentStorage        = "storage"
	ComponentSeed           = "seed"
	ComponentCLI            = "cli"
)
