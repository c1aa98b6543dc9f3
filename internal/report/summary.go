package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"smuverify/internal/domain/entity"
)

// ProcedureSummary — итог одной процедуры в порядке выполнения.
type ProcedureSummary struct {
	Test   string `json:"test"`
	Points int    `json:"points"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

// Summary — итог прогона для консоли и выхода в JSON.
type Summary struct {
	RunID      string             `json:"run_id"`
	Verdict    string             `json:"verdict"`
	Procedures []ProcedureSummary `json:"procedures"`
	Points     int                `json:"points"`
	Failed     int                `json:"failed"`
}

func Summarize(run *entity.Run) Summary {
	summary := Summary{
		RunID:      run.ID,
		Verdict:    run.Verdict.String(),
		Procedures: []ProcedureSummary{},
	}

	index := map[string]int{}

	for _, p := range run.Points {
		i, seen := index[p.Test]
		if !seen {
			i = len(summary.Procedures)
			index[p.Test] = i

			summary.Procedures = append(summary.Procedures, ProcedureSummary{Test: p.Test})
		}

		summary.Procedures[i].Points++
		summary.Points++

		if p.Passed() {
			summary.Procedures[i].Passed++
		} else {
			summary.Procedures[i].Failed++
			summary.Failed++
		}
	}

	return summary
}

// RenderText печатает таблицу итогов по процедурам.
func (s Summary) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "TEST\tPOINTS\tPASS\tFAIL\n")

	for _, proc := range s.Procedures {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", proc.Test, proc.Points, proc.Passed, proc.Failed)
	}

	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\n", s.Points, s.Points-s.Failed, s.Failed)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush summary: %w", err)
	}

	fmt.Fprintf(w, "\nRun %s: %s\n", s.RunID, s.Verdict)

	return nil
}
