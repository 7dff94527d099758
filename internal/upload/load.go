package upload

import (
	"context"
	"errors"
	"os"

	"github.com/jask/portfoliodesk/internal/csvpreview"
)

// Sink receives accepted submissions.
type Sink interface {
	Submit(ctx context.Context, sub Submission) error
}

// Load reads the file at path and parses it. Open and read failures come
// back as *csvpreview.ParseError so the dialog shows one message for both.
func Load(ctx context.Context, path string) ([]csvpreview.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &csvpreview.ParseError{Err: err}
	}
	defer f.Close()

	recs, err := csvpreview.ParseReader(ctx, f)
	if err != nil {
		var pe *csvpreview.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &csvpreview.ParseError{Err: err}
	}
	return recs, nil
}
