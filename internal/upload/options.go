package upload

import "time"

// Option is a selectable value with its caption.
type Option struct {
	Value string
	Label string
}

// Categories are the data categories an upload can target.
var Categories = []Option{
	{Value: "loans", Label: "Loan Details"},
	{Value: "customers", Label: "Customer Information"},
}

// DocumentTypes are the declared document formats.
var DocumentTypes = []Option{
	{Value: "csv", Label: "CSV"},
	{Value: "excel", Label: "Excel"},
}

// LabelFor returns the label of value in opts, or value itself.
func LabelFor(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Settings tunes the dialog.
type Settings struct {
	PreviewRows int
	SampleRows  int
	CloseDelay  time.Duration
	BannerDelay time.Duration
}

// DefaultSettings returns the stock dialog settings.
func DefaultSettings() Settings {
	return Settings{
		PreviewRows: 15,
		SampleRows:  3,
		CloseDelay:  2 * time.Second,
		BannerDelay: 3 * time.Second,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.PreviewRows <= 0 {
		s.PreviewRows = d.PreviewRows
	}
	if s.SampleRows <= 0 {
		s.SampleRows = d.SampleRows
	}
	if s.CloseDelay <= 0 {
		s.CloseDelay = d.CloseDelay
	}
	if s.BannerDelay <= 0 {
		s.BannerDelay = d.BannerDelay
	}
	return s
}
