package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format of Date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date field is not a YYYY-MM-DD string.
var ErrInvalidDate = errors.New("invalid date")

// Asset is a tracked physical item. The ID is chosen by the client.
// Optional string fields are nil when absent and encode as null.
type Asset struct {
	ID              int     `json:"id"`
	Location        string  `json:"location"`
	SerialNumber    string  `json:"serial_number"`
	AssetTag        string  `json:"asset_tag"`
	Status          string  `json:"status"`
	Date            *Date   `json:"date"`
	StationLabel    *string `json:"station_label"`
	Manufacturer    *string `json:"manufacturer"`
	BrandModel      *string `json:"brand_model"`
	ServerExtension *string `json:"server_extension"`
	IP              *string `json:"ip"`
	Note            *string `json:"note"`
	SignedTerm      bool    `json:"signed_term"`
}

// Clone returns a deep copy of a, so the copy shares no pointers with the original.
func (a Asset) Clone() Asset {
	out := a
	if a.Date != nil {
		d := *a.Date
		out.Date = &d
	}
	out.StationLabel = cloneString(a.StationLabel)
	out.Manufacturer = cloneString(a.Manufacturer)
	out.BrandModel = cloneString(a.BrandModel)
	out.ServerExtension = cloneString(a.ServerExtension)
	out.IP = cloneString(a.IP)
	out.Note = cloneString(a.Note)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the calendar date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.Wrapf(ErrInvalidDate, "%q", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a YYYY-MM-DD string. A JSON null leaves d untouched;
// for a *Date field the decoder sets the pointer to nil instead of calling this.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(ErrInvalidDate, "not a string")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
