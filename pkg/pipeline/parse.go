package pipeline

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	"github.com/matzehuels/moverboard/pkg/observability"
)

// ParseRequest decodes JSON and validates it. Malformed JSON and every
// validation failure come back as an *errors.InputError.
func ParseRequest(data []byte, optionalLogo bool) (*chart.Request, error) {
	return ParseRequestContext(context.Background(), data, optionalLogo)
}

// ParseRequestContext is [ParseRequest] with a context for the
// validation hook.
func ParseRequestContext(ctx context.Context, data []byte, optionalLogo bool) (*chart.Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewInputError([]string{"request body is not valid JSON: " + err.Error()})
	}
	return ValidateRaw(ctx, raw, optionalLogo)
}

// ValidateRaw validates an already decoded value, such as a spreadsheet
// import, and reports the outcome to the pipeline hooks.
func ValidateRaw(ctx context.Context, raw any, optionalLogo bool) (*chart.Request, error) {
	var opts []chart.ValidateOption
	if optionalLogo {
		opts = append(opts, chart.WithOptionalLogo())
	}
	res := chart.Validate(raw, opts...)

	req, ok := res.Request()
	records := 0
	if ok {
		records = len(req.Records)
	}
	observability.Pipeline().OnValidate(ctx, records, len(res.Errors()))

	if !ok {
		return nil, res.Err()
	}
	return req, nil
}
