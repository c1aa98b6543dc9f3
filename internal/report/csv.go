package report

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/lox"
)

// Columns — контракт выгрузки: состав и порядок колонок фиксированы,
// опциональные поля эталона всегда присутствуют и пустуют, когда точка
// снята без эталонного резистора.
var Columns = []string{ //nolint:gochecknoglobals
	"test", "range_name", "set_value", "actual_set",
	"dmm_mean", "dmm_stdev", "dut_mean", "dut_stdev",
	"low", "high", "unit", "pass_fail",
	"r_key", "r_nom_ohm", "r_act_ohm",
}

// WriteCSV пишет точки в порядке съёма. NaN — пустая ячейка.
func WriteCSV(w io.Writer, points []entity.PointResult) error {
	cw := csv.NewWriter(w)

	records := append([][]string{Columns}, lox.Map(points, pointRecord)...)
	if err := cw.WriteAll(records); err != nil {
		return domain.WrapError(err, errcodes.ExportFault, "failed to write points csv")
	}

	return nil
}

// WriteStandardsCSV пишет трассируемость: какие действительные значения
// эталонных резисторов применялись в расчётах.
func WriteStandardsCSV(w io.Writer, standards []entity.Standard) error {
	cw := csv.NewWriter(w)

	records := [][]string{{"standard", "key", "r_nom_ohm", "r_act_ohm"}}
	for _, std := range standards {
		records = append(records, []string{
			"Fluke5156A", std.Key, formatFloat(std.NominalOhm), formatFloat(std.ActualOhm),
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return domain.WrapError(err, errcodes.ExportFault, "failed to write standards csv")
	}

	return nil
}

func pointRecord(p entity.PointResult) []string {
	record := []string{
		p.Test,
		p.RangeName,
		formatFloat(p.SetValue),
		formatFloat(p.ActualSet),
		formatNaN(p.DMMMean),
		formatNaN(p.DMMStdev),
		formatNaN(p.DUTMean),
		formatNaN(p.DUTStdev),
		formatFloat(p.Low),
		formatFloat(p.High),
		p.Unit.String(),
		p.Verdict.String(),
	}

	if p.Std == nil {
		return append(record, "", "", "")
	}

	return append(record,
		p.Std.Key,
		formatFloat(p.Std.NominalOhm),
		formatFloat(p.Std.ActualOhm),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatNaN(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return formatFloat(v)
}
