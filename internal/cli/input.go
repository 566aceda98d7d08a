package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
	mvio "github.com/matzehuels/moverboard/pkg/io"
	"github.com/matzehuels/moverboard/pkg/pipeline"
)

// inputOpts holds the flags shared by every command that reads an input file.
type inputOpts struct {
	titleMain    string
	titleSub     string
	sheet        string
	optionalLogo bool
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.titleMain, "title-main", "", "override the main title (date line)")
	cmd.Flags().StringVar(&o.titleSub, "title-sub", "", "override the subtitle")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "spreadsheet sheet name (xlsx input; default first sheet)")
	cmd.Flags().BoolVar(&o.optionalLogo, "optional-logo", false, "accept records without a logo reference")
}

// loadRequest imports path (JSON or XLSX), applies title overrides and
// validates the result. Validation failures come back as *errors.InputError.
func loadRequest(ctx context.Context, path string, opts inputOpts) (*chart.Request, error) {
	raw, err := mvio.ImportFile(path, mvio.XLSXOptions{
		Sheet:     opts.sheet,
		TitleMain: opts.titleMain,
		TitleSub:  opts.titleSub,
	})
	if err != nil {
		return nil, err
	}
	if obj, ok := raw.(map[string]any); ok {
		if opts.titleMain != "" {
			obj[chart.FieldTitleMain] = opts.titleMain
		}
		if opts.titleSub != "" {
			obj[chart.FieldTitleSub] = opts.titleSub
		}
	}
	return pipeline.ValidateRaw(ctx, raw, opts.optionalLogo)
}

// reportInputError prints each validation message on its own line and
// reports whether err was an input error.
func reportInputError(err error) bool {
	ie, ok := errors.AsInput(err)
	if !ok {
		return false
	}
	printError("Input has %d problem(s)", len(ie.Messages))
	for _, msg := range ie.Messages {
		printDetail("%s", msg)
	}
	return true
}
