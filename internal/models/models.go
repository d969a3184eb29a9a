// Package models defines the request/response schema for the demo API endpoints.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// TextEnum is the closed set of choices accepted by the demo endpoints.
type TextEnum string

const (
	TextFirst  TextEnum = "first"
	TextSecond TextEnum = "second"
	TextThird  TextEnum = "third"
)

// Valid reports whether the value is a member of the enum.
func (t TextEnum) Valid() bool {
	switch t {
	case TextFirst, TextSecond, TextThird:
		return true
	}
	return false
}

// ExampleRequest is the demo POST body, echoed back on success. Number is a
// pointer so that zero survives the required check.
type ExampleRequest struct {
	Text        string   `json:"text" validate:"required,max=255"`
	ChoicesText TextEnum `json:"choices_text" validate:"required,oneof=first second third"`
	Number      *int     `json:"number" validate:"required,gte=0,lte=999999"`
	SomeDate    string   `json:"some_date" validate:"required,datetime=2006-01-02"`
	ListField   []string `json:"list_field" validate:"required"`
}

// CheckDate rejects dates after the current day. Runs after tag validation,
// which already guarantees the field parses.
func (r ExampleRequest) CheckDate(now time.Time) error {
	d, err := time.Parse(DateLayout, r.SomeDate)
	if err != nil {
		return fmt.Errorf("some_date must use the %s format", DateLayout)
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return fmt.Errorf("some_date must not be in the future")
	}
	return nil
}

// GetExampleResponse is one item of the list endpoint. ChoicesText is null
// when the query did not supply a choice.
type GetExampleResponse struct {
	Number      int       `json:"number"`
	ChoicesText *TextEnum `json:"choices_text"`
}
