// Package upload is the state machine behind the data upload dialog. It owns
// no goroutines or timers: reads and delays are requested from the host as
// values and delivered back through CompleteRead and Fire.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jask/portfoliodesk/internal/csvpreview"
)

// State is the dialog lifecycle stage.
type State string

const (
	StateIdle          State = "idle"
	StateFileChosen    State = "file_chosen"
	StateParseFailed   State = "parse_failed"
	StatePreviewReady  State = "preview_ready"
	StateSubmitting    State = "submitting"
	StateSuccessNotice State = "success_notice"
)

// NoFileName is shown while no file is chosen.
const NoFileName = "No file chosen"

// ReadRequest asks the host to load Path and hand the outcome back with Seq.
type ReadRequest struct {
	Seq  uint64
	Path string
}

// TimerKind distinguishes the two post-submit timers.
type TimerKind int

const (
	TimerClose TimerKind = iota
	TimerBanner
)

// TimerToken identifies one scheduled timer. Tokens from before the last
// Close or Submit are stale.
type TimerToken struct {
	Kind TimerKind
	Seq  uint64
}

// Schedule asks the host to call Fire(Token) after Delay.
type Schedule struct {
	Token TimerToken
	Delay time.Duration
}

// Submission is the payload handed to the Sink on a valid submit.
type Submission struct {
	Category     string
	FileName     string
	DocumentType string
	Remark       string
	RowCount     int
	Sample       []csvpreview.Record
	SubmittedAt  time.Time
}

// Dialog holds the upload form. The zero value is not usable; call New.
type Dialog struct {
	settings Settings

	open    bool
	state   State
	reading bool
	banner  bool

	category string
	docType  string
	remark   string
	path     string
	records  []csvpreview.Record
	err      error

	readSeq  uint64
	timerSeq uint64
}

// New returns a closed, idle dialog.
func New(s Settings) *Dialog {
	return &Dialog{settings: s.withDefaults(), state: StateIdle}
}

func (d *Dialog) Settings() Settings { return d.settings }
func (d *Dialog) State() State { return d.state }
func (d *Dialog) IsOpen() bool { return d.open }
func (d *Dialog) Banner() bool { return d.banner }
func (d *Dialog) Category() string { return d.category }
func (d *Dialog) DocumentType() string { return d.docType }
func (d *Dialog) Remark() string { return d.remark }

// Reading reports whether a ReadRequest is outstanding.
func (d *Dialog) Reading() bool { return d.reading }

// Records returns every parsed record of the chosen file.
func (d *Dialog) Records() []csvpreview.Record { return d.records }

// Err is the message currently shown on the form, if any.
func (d *Dialog) Err() error { return d.err }

// BannerText is the success banner message.
func (d *Dialog) BannerText() string { return msgSubmitted }

// FileName is the base name of the chosen file.
func (d *Dialog) FileName() string {
	if d.path == "" {
		return NoFileName
	}
	return filepath.Base(d.path)
}

// Open shows the dialog.
func (d *Dialog) Open() { d.open = true }

// Close hides the dialog and resets it. Pending reads and timers are
// invalidated, so their late deliveries are ignored.
func (d *Dialog) Close() {
	d.readSeq++
	d.timerSeq++
	*d = Dialog{
		settings: d.settings,
		state:    StateIdle,
		readSeq:  d.readSeq,
		timerSeq: d.timerSeq,
	}
}

func (d *Dialog) SetCategory(v string) { d.category = v }
func (d *Dialog) SetDocumentType(v string) { d.docType = v }
func (d *Dialog) SetRemark(v string) { d.remark = v }

// ChooseFile records path as the selected file. It clears any previous
// error or preview, then validates the extension. For CSV files it returns
// the read the host must perform; otherwise the returned bool is false and
// Err explains why.
func (d *Dialog) ChooseFile(path string) (ReadRequest, bool) {
	d.err = nil
	d.records = nil
	d.reading = false
	d.readSeq++
	d.path = path
	d.state = StateFileChosen

	ext := extension(path)
	switch ext {
	case "csv":
		d.reading = true
		return ReadRequest{Seq: d.readSeq, Path: path}, true
	case "xlsx", "xls":
		d.err = &UnsupportedFormatError{Ext: ext, Spreadsheet: true}
	default:
		d.err = &UnsupportedFormatError{Ext: ext}
	}
	return ReadRequest{}, false
}

// CompleteRead delivers the outcome of a ReadRequest and reports whether it
// was accepted. It is a no-op when the dialog is closed or seq belongs to an
// older request.
func (d *Dialog) CompleteRead(seq uint64, records []csvpreview.Record, err error) bool {
	if !d.open || seq != d.readSeq || !d.reading {
		return false
	}
	d.reading = false
	if err != nil {
		d.records = nil
		d.err = err
		d.state = StateParseFailed
		return true
	}
	d.records = records
	d.state = StatePreviewReady
	return true
}

// Preview returns at most PreviewRows records for display.
func (d *Dialog) Preview() []csvpreview.Record {
	if len(d.records) <= d.settings.PreviewRows {
		return d.records
	}
	return d.records[:d.settings.PreviewRows]
}

// PreviewCaption describes how much of the file the preview shows.
func (d *Dialog) PreviewCaption() string {
	n := len(d.records)
	if n > d.settings.PreviewRows {
		return fmt.Sprintf("Showing first %d of %d records", d.settings.PreviewRows, n)
	}
	return fmt.Sprintf("Showing %d records", n)
}

// CanSubmit reports whether Submit would pass validation.
func (d *Dialog) CanSubmit() bool {
	return d.category != "" && d.path != "" && len(d.records) > 0 && !d.reading
}

// Submit validates the form. On success it returns the Submission for the
// Sink and the two timers the host must schedule, and resets the form
// fields. On failure the state is unchanged and Err is set.
func (d *Dialog) Submit(now time.Time) (Submission, []Schedule, error) {
	if d.category == "" || d.path == "" {
		d.err = &ValidationError{Message: msgMissing}
		return Submission{}, nil, d.err
	}
	if len(d.records) == 0 {
		d.err = &ValidationError{Message: msgNoRecords}
		return Submission{}, nil, d.err
	}

	d.state = StateSubmitting
	sample := d.records
	if len(sample) > d.settings.SampleRows {
		sample = sample[:d.settings.SampleRows]
	}
	sub := Submission{
		Category:     d.category,
		FileName:     d.FileName(),
		DocumentType: d.docType,
		Remark:       d.remark,
		RowCount:     len(d.records),
		Sample:       append([]csvpreview.Record(nil), sample...),
		SubmittedAt:  now,
	}

	d.category = ""
	d.docType = ""
	d.remark = ""
	d.path = ""
	d.records = nil
	d.err = nil
	d.banner = true
	d.state = StateSuccessNotice

	d.timerSeq++
	return sub, []Schedule{
		{Token: TimerToken{Kind: TimerClose, Seq: d.timerSeq}, Delay: d.settings.CloseDelay},
		{Token: TimerToken{Kind: TimerBanner, Seq: d.timerSeq}, Delay: d.settings.BannerDelay},
	}, nil
}

// Fire delivers an elapsed timer. Stale tokens are ignored.
func (d *Dialog) Fire(tok TimerToken) {
	if tok.Seq != d.timerSeq {
		return
	}
	switch tok.Kind {
	case TimerClose:
		d.Close()
	case TimerBanner:
		d.banner = false
		if d.state == StateSuccessNotice {
			d.state = StateIdle
		}
	}
}

func extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return strings.ToLower(base)
	}
	return strings.ToLower(base[i+1:])
}
