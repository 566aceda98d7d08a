package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/pipeline"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		opts     inputOpts
		capacity int
	)

	cmd := &cobra.Command{
		Use:   "preview <input.json|input.xlsx>",
		Short: "Page through the computed layout in the terminal",
		Long: `Preview paginates the input and shows each page's rows: the wrapped driver
lines, the row origin and height, and the change value. Use ←/→ to switch
pages and q to quit. No assets are fetched and nothing is drawn.`,
		Args: cobra.ExactArgs(1),
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
			pages, rows, err := pipeline.Plan(req, popts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPreviewModel(pages, rows), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 0, "records per page (default 7)")
	opts.register(cmd)
	registerInputCompletion(cmd)
	return cmd
}

// =============================================================================
// PreviewModel - Interactive page navigator
// =============================================================================

// PreviewModel is the bubbletea model for paging through a planned chart.
// It only indexes into the planned pages; nothing is recomputed.
type PreviewModel struct {
	Pages []layout.Page
	Rows  []layout.Rows
	Index int
}

// NewPreviewModel creates a preview positioned on the first page.
func NewPreviewModel(pages []layout.Page, rows []layout.Rows) PreviewModel {
	return PreviewModel{Pages: pages, Rows: rows}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "pgup":
			if m.Index > 0 {
				m.Index--
			}
		case "right", "l", "pgdown", " ":
			if m.Index < len(m.Pages)-1 {
				m.Index++
			}
		case "home", "g":
			m.Index = 0
		case "end", "G":
			m.Index = max(0, len(m.Pages)-1)
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	if len(m.Pages) == 0 {
		return StyleDim.Render("no pages") + "\n"
	}
	page, rows := m.Pages[m.Index], m.Rows[m.Index]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(page.TitleMain))
	b.WriteString(StyleDim.Render(" · "))
	b.WriteString(StyleValue.Render(page.TitleSub))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ page  q quit"))
	b.WriteString("\n\n")

	data := make([][]string, len(page.Records))
	for i, rec := range page.Records {
		row := rows.Rows[i]
		lines := strings.Join(row.Lines, " / ")
		if row.Truncated {
			lines += " …"
		}
		data[i] = []string{
			rec.Ticker,
			rec.Name,
			lines,
			fmt.Sprintf("%.0f", row.OriginY),
			fmt.Sprintf("%.0f", row.Height),
			rec.ChangePct,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Ticker", "Name", "Driver", "Y", "H", "Change").
		Rows(data...).
		StyleFunc(func(r, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if r == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return base.Bold(true).Foreground(colorWhite)
			case 3, 4:
				return base.Foreground(colorDim)
			case 5:
				if r >= 0 && r < len(page.Records) {
					return changeStyle(page.Records[r].IsNegative()).Padding(0, 1)
				}
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  page %d/%d  ·  %d rows  ·  table height %.0f", page.Index, page.Total, len(page.Records), rows.Total)))
	b.WriteString("\n")
	return b.String()
}
