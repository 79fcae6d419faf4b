// Package sheet appends order rows to a Google spreadsheet, the
// system's primary persistence collaborator. Rows are appended, never
// overwritten.
package sheet

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kartvela/preseller/pkg/order"
)

const timestampLayout = "2006-01-02 15:04:05"

// RowAppender posts one flat row per order entry.
type RowAppender interface {
	Append(ctx context.Context, e order.Entry, author string, at time.Time) error
}

// Appender writes rows through the Sheets API.
type Appender struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewAppender creates an appender authenticated with a service-account
// credentials file.
func NewAppender(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Appender, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheet: create service: %w", err)
	}

	return &Appender{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// buildRow flattens an entry to the persisted column order:
// timestamp, customer, product, amount_value, amount_unit, comment, author.
func buildRow(e order.Entry, author string, at time.Time) []interface{} {
	return []interface{}{
		at.Format(timestampLayout),
		e.Customer,
		e.Product,
		e.AmountValue,
		e.AmountUnit,
		e.Comment,
		author,
	}
}

// Append posts one row. Each entry is appended independently so a
// failure never affects sibling entries from the same message.
func (a *Appender) Append(ctx context.Context, e order.Entry, author string, at time.Time) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{buildRow(e, author, at)},
	}

	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet: append row: %w", err)
	}
	return nil
}

var _ RowAppender = (*Appender)(nil)
