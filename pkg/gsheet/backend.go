package gsheet

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// backend is the slice of the Sheets API the client needs. The real
// implementation wraps a sheets/v4 service; tests substitute a recording
// fake.
type backend interface {
	Metadata(ctx context.Context) (*sheets.Spreadsheet, error)
	BatchUpdateValues(ctx context.Context, req *sheets.BatchUpdateValuesRequest) error
	BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error)
	Values(ctx context.Context, rangeA1 string) ([][]interface{}, error)
}

type sheetsBackend struct {
	service       *sheets.Service
	spreadsheetID string
}

func newSheetsBackend(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*sheetsBackend, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &sheetsBackend{service: srv, spreadsheetID: spreadsheetID}, nil
}

func (b *sheetsBackend) Metadata(ctx context.Context) (*sheets.Spreadsheet, error) {
	return b.service.Spreadsheets.Get(b.spreadsheetID).Context(ctx).Do()
}

func (b *sheetsBackend) BatchUpdateValues(ctx context.Context, req *sheets.BatchUpdateValuesRequest) error {
	_, err := b.service.Spreadsheets.Values.BatchUpdate(b.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (b *sheetsBackend) BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return b.service.Spreadsheets.BatchUpdate(b.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
}

func (b *sheetsBackend) Values(ctx context.Context, rangeA1 string) ([][]interface{}, error) {
	resp, err := b.service.Spreadsheets.Values.Get(b.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
