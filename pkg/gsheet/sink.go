package gsheet

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// sink commits a flushed queue. The remote implementation talks to the API
// through the retry executor; the preview implementation renders HTML.
// Commit order is value writes first (one batched call), then structural
// ops one call each, and is deliberately not transactional: a failure
// partway through leaves earlier calls committed.
type sink interface {
	commit(ctx context.Context, writes []ValueWrite, ops []StructuralOp) error
}

type apiSink struct {
	sp      *Spreadsheet
	sheetID int64
}

func (a *apiSink) commit(ctx context.Context, writes []ValueWrite, ops []StructuralOp) error {
	if len(writes) > 0 {
		data := make([]*sheets.ValueRange, len(writes))
		for i, vw := range writes {
			data[i] = &sheets.ValueRange{Range: vw.Range, Values: vw.Values}
		}
		err := a.sp.retry.do(ctx, "values_batch_update", func() error {
			return a.sp.backend.BatchUpdateValues(ctx, &sheets.BatchUpdateValuesRequest{
				ValueInputOption: "USER_ENTERED",
				Data:             data,
			})
		})
		if err != nil {
			return err
		}
	}

	for _, op := range ops {
		reqs, err := requestsFor(a.sheetID, op)
		if err != nil {
			return err
		}
		if len(reqs) == 0 {
			continue
		}
		err = a.sp.retry.do(ctx, string(op.Kind), func() error {
			_, err := a.sp.backend.BatchUpdate(ctx, reqs)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
