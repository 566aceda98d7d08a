package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		opts     inputOpts
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "validate <input.json|input.xlsx>",
		Short: "Check an input file and list every problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("optional-logo") {
				opts.optionalLogo = cfg.Assets.OptionalLogo
			}

			req, err := loadRequest(cmd.Context(), args[0], opts)
			if err != nil {
				if reportInputError(err) {
					return fmt.Errorf("%s is not a valid movers file", args[0])
				}
				return err
			}

			popts := cfg.PipelineOptions()
			if cmd.Flags().Changed("capacity") {
				popts.Capacity = capacity
			}
			pages, _, err := pipeline.Plan(req, popts)
			if err != nil {
				return err
			}

			printSuccess("%s is valid", args[0])
			printKeyValue("Title", req.TitleMain)
			printKeyValue("Subtitle", req.TitleSub)
			printKeyValue("Records", strconv.Itoa(len(req.Records)))
			printKeyValue("Pages", strconv.Itoa(len(pages)))
			missing := 0
			for _, r := range req.Records {
				if !r.HasLogo() {
					missing++
				}
			}
			if missing > 0 {
				printWarning("%d record(s) have no logo and will show a fallback badge", missing)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 0, "records per page (default 7)")
	opts.register(cmd)
	registerInputCompletion(cmd)
	return cmd
}
