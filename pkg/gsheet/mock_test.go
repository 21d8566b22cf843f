package gsheet

import (
	"context"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	log "github.com/sirupsen/logrus"
)

// fakeBackend records every call and pops scripted errors in order. A nil
// or exhausted error queue means the call succeeds.
type fakeBackend struct {
	meta    *sheets.Spreadsheet
	metaErr error

	values    [][]interface{}
	valuesErr error

	valueCalls  []*sheets.BatchUpdateValuesRequest
	valueErrs   []error
	updateCalls [][]*sheets.Request
	updateErrs  []error

	nextSheetID int64
}

func (f *fakeBackend) Metadata(ctx context.Context) (*sheets.Spreadsheet, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return f.meta, nil
}

func (f *fakeBackend) BatchUpdateValues(ctx context.Context, req *sheets.BatchUpdateValuesRequest) error {
	f.valueCalls = append(f.valueCalls, req)
	return popErr(&f.valueErrs)
}

func (f *fakeBackend) BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	f.updateCalls = append(f.updateCalls, requests)
	if err := popErr(&f.updateErrs); err != nil {
		return nil, err
	}

	resp := &sheets.BatchUpdateSpreadsheetResponse{}
	for _, req := range requests {
		reply := &sheets.Response{}
		if req.AddSheet != nil {
			f.nextSheetID++
			reply.AddSheet = &sheets.AddSheetResponse{
				Properties: &sheets.SheetProperties{
					Title:   req.AddSheet.Properties.Title,
					SheetId: f.nextSheetID,
				},
			}
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp, nil
}

func (f *fakeBackend) Values(ctx context.Context, rangeA1 string) ([][]interface{}, error) {
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return f.values, nil
}

func popErr(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

// metadataWith builds spreadsheet metadata carrying the given tabs.
func metadataWith(title string, tabs ...string) *sheets.Spreadsheet {
	meta := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for i, tab := range tabs {
		meta.Sheets = append(meta.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: tab, SheetId: int64(100 + i)},
		})
	}
	return meta
}

func apiErr(code int) *googleapi.Error {
	return &googleapi.Error{Code: code, Message: "scripted"}
}

// testRetrier retries instantly, recording each computed sleep.
func testRetrier(maxRetries int, baseDelay time.Duration, sleeps *[]time.Duration) *retrier {
	r := newRetrier(maxRetries, baseDelay, log.StandardLogger())
	r.jitter = func() float64 { return 0 }
	r.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return r
}

func newTestSpreadsheet(fb *fakeBackend) (*Spreadsheet, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	return &Spreadsheet{
		backend:    fb,
		name:       "Budget Tracker",
		previewDir: "sheet_previews",
		retry:      testRetrier(2, time.Second, sleeps),
		log:        log.StandardLogger(),
	}, sleeps
}
