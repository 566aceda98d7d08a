package chart

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/moverboard/pkg/errors"
)

func decodeRaw(t *testing.T, s string) any {
	t.Helper()
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return raw
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty data",
			input: `{"title_main":"Sep 15","title_sub":"Movers","data":[]}`,
			want:  []string{"data array must not be empty"},
		},
		{
			name:  "everything missing",
			input: `{}`,
			want: []string{
				"missing title_main field",
				"missing title_sub field",
				"data field must be an array",
			},
		},
		{
			name:  "data not a list",
			input: `{"title_main":"a","title_sub":"b","data":{"ticker":"X"}}`,
			want:  []string{"data field must be an array"},
		},
		{
			name:  "blank titles",
			input: `{"title_main":"  ","title_sub":"","data":[]}`,
			want: []string{
				"missing title_main field",
				"missing title_sub field",
				"data array must not be empty",
			},
		},
		{
			name: "per record fields with 1-based index",
			input: `{"title_main":"a","title_sub":"b","data":[
				{"ticker":"A","name":"Alpha","logo":"x","driver":"d","change_pct":"+1%"},
				{"ticker":"B","driver":"d"},
				"not an object"
			]}`,
			want: []string{
				"item 2 is missing name field",
				"item 2 is missing logo field",
				"item 2 is missing change_pct field",
				"item 3 is missing ticker field",
				"item 3 is missing name field",
				"item 3 is missing logo field",
				"item 3 is missing driver field",
				"item 3 is missing change_pct field",
			},
		},
		{
			name:  "not an object",
			input: `[1,2,3]`,
			want: []string{
				"missing title_main field",
				"missing title_sub field",
				"data field must be an array",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(decodeRaw(t, tt.input))
			if res.OK() {
				t.Fatal("Validate() OK = true, want false")
			}
			if got := res.Errors(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Errors() = %q, want %q", got, tt.want)
			}
			if _, ok := res.Request(); ok {
				t.Error("Request() ok = true on failure")
			}
			if !errors.Is(res.Err(), errors.ErrCodeInvalidInput) {
				t.Errorf("Err() = %v, want INVALID_INPUT", res.Err())
			}
		})
	}
}

func TestValidateSuccess(t *testing.T) {
	input := `{
		"title_main": "Sep 15",
		"title_sub": "Big Movers & Drivers",
		"data": [
			{"ticker":"CHEK","name":"Check-cap","logo":"https://cdn.ainvest.com/icon/us/CHEK.png",
			 "driver":"Merger deal with MBody AI","change_pct":"+184.18%"}
		]
	}`
	res := Validate(decodeRaw(t, input))
	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	req, ok := res.Request()
	if !ok {
		t.Fatal("Request() ok = false")
	}
	want := &Request{
		TitleMain: "Sep 15",
		TitleSub:  "Big Movers & Drivers",
		Records: []Record{{
			Ticker:    "CHEK",
			Name:      "Check-cap",
			Logo:      "https://cdn.ainvest.com/icon/us/CHEK.png",
			Driver:    "Merger deal with MBody AI",
			ChangePct: "+184.18%",
		}},
	}
	if !reflect.DeepEqual(req, want) {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}
}

func TestValidateAliases(t *testing.T) {
	input := `{"titleMain":"a","titleSub":"b","records":[
		{"ticker":"A","name":"Alpha","logo":"x","cause":"because","changePct":"-2%"}
	]}`
	res := Validate(decodeRaw(t, input))
	req, ok := res.Request()
	if !ok {
		t.Fatalf("Errors() = %v", res.Errors())
	}
	if req.Records[0].Driver != "because" {
		t.Errorf("Driver = %q, want %q", req.Records[0].Driver, "because")
	}
	if req.Records[0].ChangePct != "-2%" {
		t.Errorf("ChangePct = %q, want %q", req.Records[0].ChangePct, "-2%")
	}
}

func TestValidateOptionalLogo(t *testing.T) {
	input := `{"title_main":"a","title_sub":"b","data":[
		{"ticker":"A","name":"Alpha","driver":"d","change_pct":"+1%"}
	]}`

	if res := Validate(decodeRaw(t, input)); res.OK() {
		t.Error("Validate() without option accepted a missing logo")
	}

	res := Validate(decodeRaw(t, input), WithOptionalLogo())
	req, ok := res.Request()
	if !ok {
		t.Fatalf("Errors() = %v", res.Errors())
	}
	if req.Records[0].HasLogo() {
		t.Errorf("Logo = %q, want empty", req.Records[0].Logo)
	}
}

func TestValidateNumericChange(t *testing.T) {
	input := `{"title_main":"a","title_sub":"b","data":[
		{"ticker":"A","name":"Alpha","logo":"x","driver":"d","change_pct":12.5},
		{"ticker":"B","name":"Beta","logo":"x","driver":"d","change_pct":-3},
		{"ticker":"C","name":"Gamma","logo":"x","driver":"d","change_pct":0}
	]}`
	req, ok := Validate(decodeRaw(t, input)).Request()
	if !ok {
		t.Fatal("Request() ok = false")
	}
	if got := req.Records[0].ChangePct; got != "+12.50%" {
		t.Errorf("ChangePct[0] = %q, want %q", got, "+12.50%")
	}
	if got := req.Records[1].ChangePct; got != "-3.00%" {
		t.Errorf("ChangePct[1] = %q, want %q", got, "-3.00%")
	}
	// An unchanged quote is a value, not a missing field.
	if got := req.Records[2].ChangePct; got != "+0.00%" {
		t.Errorf("ChangePct[2] = %q, want %q", got, "+0.00%")
	}
}

func TestValidateExampleJSON(t *testing.T) {
	res := Validate(decodeRaw(t, string(ExampleJSON())))
	req, ok := res.Request()
	if !ok {
		t.Fatalf("Errors() = %v", res.Errors())
	}
	if !reflect.DeepEqual(req, Example()) {
		t.Error("example JSON does not round-trip through Validate")
	}
}

func TestResultErrorsIsCopy(t *testing.T) {
	res := Validate(nil)
	errs := res.Errors()
	errs[0] = "changed"
	if res.Errors()[0] == "changed" {
		t.Error("Errors() exposes internal slice")
	}
}
