package upload

const (
	msgUnsupported = "Please upload a CSV or Excel file (.csv, .xlsx, .xls)"
	msgExcel       = "Excel parsing is not implemented. Please use CSV."
	msgMissing     = "Please select a data category and upload a file"
	msgNoRecords   = "No valid data found in the file"
	msgSubmitted   = "Data uploaded successfully!"
)

// ValidationError is a submit attempt rejected before anything happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnsupportedFormatError rejects a chosen file by extension. Spreadsheet
// reports Excel files, which are recognised but not parsed.
type UnsupportedFormatError struct {
	Ext         string
	Spreadsheet bool
}

func (e *UnsupportedFormatError) Error() string {
	if e.Spreadsheet {
		return msgExcel
	}
	return msgUnsupported
}
