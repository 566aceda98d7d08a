package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/moverboard/pkg/errors"
)

// Canonical field names, in the order they are checked.
const (
	FieldTitleMain = "title_main"
	FieldTitleSub  = "title_sub"
	FieldData      = "data"
	FieldTicker    = "ticker"
	FieldName      = "name"
	FieldLogo      = "logo"
	FieldDriver    = "driver"
	FieldChangePct = "change_pct"
)

// recordFields lists the per-record fields in reporting order.
var recordFields = []string{FieldTicker, FieldName, FieldLogo, FieldDriver, FieldChangePct}

// aliases maps canonical keys to accepted alternate spellings.
var aliases = map[string][]string{
	FieldTitleMain: {"titleMain"},
	FieldTitleSub:  {"titleSub"},
	FieldData:      {"records"},
	FieldDriver:    {"cause"},
	FieldChangePct: {"changePct"},
}

// Messages produced by the validator.
const (
	msgDataNotArray = "data field must be an array"
	msgDataEmpty    = "data array must not be empty"
)

func missingField(field string) string { return fmt.Sprintf("missing %s field", field) }

func missingItemField(index int, field string) string {
	return fmt.Sprintf("item %d is missing %s field", index, field)
}

// ValidateOption configures [Validate].
type ValidateOption func(*validateConfig)

type validateConfig struct {
	optionalLogo bool
}

// WithOptionalLogo stops the validator from requiring a logo reference on
// each record. Records without a logo render the fallback badge.
func WithOptionalLogo() ValidateOption {
	return func(c *validateConfig) { c.optionalLogo = true }
}

// Result is the outcome of [Validate]: either a typed request or the
// complete list of problems, never both.
type Result struct {
	req  *Request
	errs []string
}

// OK reports whether validation succeeded.
func (r Result) OK() bool { return r.req != nil }

// Request returns the validated request.
func (r Result) Request() (*Request, bool) { return r.req, r.req != nil }

// Errors returns a copy of the validation messages in check order.
func (r Result) Errors() []string { return append([]string(nil), r.errs...) }

// Err returns the messages as an *errors.InputError, or nil on success.
func (r Result) Err() error { return errors.NewInputError(r.errs) }

// Validate checks raw (typically the result of json.Unmarshal into any)
// and accumulates every failure: titles first, then the data array, then
// each record's required fields with its 1-based index.
func Validate(raw any, opts ...ValidateOption) Result {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	obj, _ := raw.(map[string]any)
	var errs []string

	titleMain, ok := lookupString(obj, FieldTitleMain)
	if !ok {
		errs = append(errs, missingField(FieldTitleMain))
	}
	titleSub, ok := lookupString(obj, FieldTitleSub)
	if !ok {
		errs = append(errs, missingField(FieldTitleSub))
	}

	items, _ := lookup(obj, FieldData)
	list, isList := items.([]any)
	var records []map[string]any
	switch {
	case !isList:
		errs = append(errs, msgDataNotArray)
	case len(list) == 0:
		errs = append(errs, msgDataEmpty)
	default:
		records = make([]map[string]any, len(list))
		for i, item := range list {
			rec, _ := item.(map[string]any)
			norm := make(map[string]any, len(recordFields))
			for _, field := range recordFields {
				v, ok := lookupString(rec, field)
				if ok {
					norm[field] = v
					continue
				}
				if field == FieldLogo && cfg.optionalLogo {
					continue
				}
				errs = append(errs, missingItemField(i+1, field))
			}
			records[i] = norm
		}
	}

	if len(errs) > 0 {
		return Result{errs: errs}
	}

	req, err := decode(titleMain, titleSub, records)
	if err != nil {
		return Result{errs: []string{err.Error()}}
	}
	return Result{req: req}
}

// decode builds the typed request from normalized maps.
func decode(titleMain, titleSub string, records []map[string]any) (*Request, error) {
	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &req,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	in := map[string]any{
		FieldTitleMain: titleMain,
		FieldTitleSub:  titleSub,
		FieldData:      records,
	}
	if err := dec.Decode(in); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

// lookup finds key or one of its aliases in obj.
func lookup(obj map[string]any, key string) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if v, ok := obj[key]; ok {
		return v, true
	}
	for _, alt := range aliases[key] {
		if v, ok := obj[alt]; ok {
			return v, true
		}
	}
	return nil, false
}

// lookupString returns the trimmed string value of key. Numbers are
// accepted for change_pct and formatted as signed percentages.
func lookupString(obj map[string]any, key string) (string, bool) {
	v, ok := lookup(obj, key)
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		if key == FieldChangePct {
			return FormatPercent(val), true
		}
	case json.Number:
		if key == FieldChangePct {
			f, err := val.Float64()
			if err != nil {
				return "", false
			}
			return FormatPercent(f), true
		}
	}
	return "", false
}

// FormatPercent renders a numeric change as a signed percentage, e.g. "+12.50%".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64) + "%"
	if v >= 0 {
		return "+" + s
	}
	return s
}
