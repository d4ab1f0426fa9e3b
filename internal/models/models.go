package models

import (
	"net/url"
)

// DefaultRange is used when the caller does not pass a range.
const DefaultRange = "Sheet1!A:C"

// SheetQuery is a single read request against one spreadsheet.
type SheetQuery struct {
	SheetID string
	Range   string
}

// QueryFromURL builds a SheetQuery from request parameters. SheetID may come back empty;
// validating it is up to the caller.
func QueryFromURL(q url.Values) SheetQuery {
	sq := SheetQuery{
		SheetID: q.Get("sheetId"),
		Range:   q.Get("range"),
	}
	if sq.Range == "" {
		sq.Range = DefaultRange
	}
	return sq
}

// Values holds rows of cells exactly as the Sheets API returns them.
// A cell is a string, float64, bool or nil.
type Values [][]interface{}

type ValuesResponse struct {
	Values Values `json:"values"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Sheets string `json:"sheets"`
	TS     string `json:"ts"`
}
