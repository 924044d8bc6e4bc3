package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

func writeSummary(path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal summary")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write summary")
}

// ReadSummary loads a summary written by Run.
func ReadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read summary")
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parse summary %s", path)
	}
	return &s, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9e64")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
)

// Table renders the results as a terminal table, one row per program.
func (s *Summary) Table() string {
	rows := make([][]string, 0, len(s.Results))
	failed := make(map[int]bool)
	for i, r := range s.Results {
		if r.Error != "" {
			failed[i] = true
			rows = append(rows, []string{r.Dataset, r.Scheme, "-", "-", "-", "-", r.Error})
			continue
		}
		rows = append(rows, []string{
			r.Dataset,
			r.Scheme,
			strconv.Itoa(r.Qubits),
			strconv.Itoa(r.Gates),
			strconv.Itoa(r.Depth),
			fmt.Sprintf("%.6fs", r.Seconds),
			"",
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Dataset", "Scheme", "Qubits", "Gates", "Depth", "Time", "Error").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case failed[row]:
				return errorStyle
			}
			return cellStyle
		})
	return t.Render()
}
