package repository

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// valueInputOption makes the sheet parse the timestamp like typed input.
const valueInputOption = "USER_ENTERED"

// SheetsStore keeps submissions in a Google Sheets spreadsheet.
// Column C holds emails; rows are appended to columns A-H under a header row.
type SheetsStore struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheets  *sheets.SpreadsheetsService
	spreadsheetID string
	sheetName     string
}

// NewSheetsStore builds a Sheets client once. Credentials and endpoint are
// passed as client options, e.g. option.WithCredentialsJSON.
func NewSheetsStore(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*SheetsStore, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &SheetsStore{
		values:        srv.Spreadsheets.Values,
		spreadsheets:  srv.Spreadsheets,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// quoteSheetName quotes a sheet name for A1 notation, so names with spaces
// or punctuation ("Form Responses 1") resolve. Embedded quotes are doubled.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func (s *SheetsStore) emailRange() string {
	return quoteSheetName(s.sheetName) + "!C2:C"
}

func (s *SheetsStore) appendRange() string {
	return quoteSheetName(s.sheetName) + "!A:H"
}

// ListKnownEmails reads the email column below the header.
func (s *SheetsStore) ListKnownEmails(ctx context.Context) ([]string, error) {
	resp, err := s.values.Get(s.spreadsheetID, s.emailRange()).Context(ctx).Do()
	if err != nil {
		return nil, readError(err)
	}

	emails := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if v := strings.TrimSpace(fmt.Sprint(row[0])); v != "" {
			emails = append(emails, v)
		}
	}
	return emails, nil
}

// AppendRecord appends one row after the last non-empty row.
func (s *SheetsStore) AppendRecord(ctx context.Context, sub *model.Submission) error {
	row := sub.Row()
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}

	_, err := s.values.Append(s.spreadsheetID, s.appendRange(), &sheets.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return writeError(err)
	}
	return nil
}

// Ping fetches spreadsheet metadata to check credentials and access.
func (s *SheetsStore) Ping(ctx context.Context) error {
	_, err := s.spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to reach spreadsheet: %w", err)
	}
	return nil
}
