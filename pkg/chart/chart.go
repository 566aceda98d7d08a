// Package chart defines the movers chart request model and its validator.
//
// A [Request] carries two title lines and an ordered list of [Record]s,
// one per mover. Requests usually arrive as loosely typed JSON; [Validate]
// checks the raw value, collects every problem it finds, and only then
// produces a typed Request.
//
//	var raw any
//	_ = json.Unmarshal(data, &raw)
//	res := chart.Validate(raw)
//	if err := res.Err(); err != nil {
//	    // err is an *errors.InputError listing every violation
//	}
//	req, _ := res.Request()
package chart

import "strings"

// Request is a validated movers chart request.
type Request struct {
	TitleMain string   `json:"title_main"`
	TitleSub  string   `json:"title_sub"`
	Records   []Record `json:"data"`
}

// Record is one mover row.
type Record struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Logo      string `json:"logo,omitempty"`
	Driver    string `json:"driver"`
	ChangePct string `json:"change_pct"`
}

// HasLogo reports whether the record references a logo image.
func (r Record) HasLogo() bool {
	return strings.TrimSpace(r.Logo) != ""
}

// IsNegative reports whether the change value is below zero.
// Only an explicit leading minus (ASCII or U+2212) counts; "0.00%" and
// unsigned values are non-negative.
func (r Record) IsNegative() bool {
	s := strings.TrimSpace(r.ChangePct)
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "−")
}
