package gdocs

import (
	"context"
	"regexp"
	"strconv"

	"google.golang.org/api/sheets/v4"

	"github.com/irwhub/employee-contract-app/internal/apperr"
)

// AppendRow appends one audit row to the configured spreadsheet tab and
// returns the A1-notation range the API reports for the written cells.
func (c *Client) AppendRow(ctx context.Context, row []interface{}) (string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Append(
		c.cfg.SpreadsheetID,
		c.cfg.SheetName+"!A1",
		&sheets.ValueRange{Values: [][]interface{}{row}},
	).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", apperr.Upstreamf("sheet_append", err, "appending audit row failed")
	}
	if resp.Updates == nil {
		return "", nil
	}
	return resp.Updates.UpdatedRange, nil
}

var rangeRowPattern = regexp.MustCompile(`![A-Z]+(\d+)`)

// RowFromRange extracts the numeric row index from an A1-notation range
// such as "Sheet1!A5:H5".
func RowFromRange(updatedRange string) (int64, bool) {
	m := rangeRowPattern.FindStringSubmatch(updatedRange)
	if m == nil {
		return 0, false
	}
	row, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return row, true
}
