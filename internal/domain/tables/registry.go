package tables

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
	"smuverify/pkg/errcodes"
)

// ComplianceRow — строка таблицы 18-2: максимальный compliance для диапазона.
type ComplianceRow struct {
	RangeName string     `json:"range_name"`
	Unit      value.Unit `json:"unit"`
	Max       float64    `json:"max"`
}

// Table — одна таблица раздела 18 для листинга. Заполнен ровно один из
// срезов Rows/StdRows/Compliance.
type Table struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Rows       []entity.LimitRow    `json:"rows,omitempty"`
	StdRows    []entity.StandardRow `json:"std_rows,omitempty"`
	Compliance []ComplianceRow      `json:"compliance,omitempty"`
}

// Доступ к таблицам процедур. Данные статичны, поэтому наружу всегда
// уходит копия.

func MainframeOutV() []entity.LimitRow { return slices.Clone(mainframeOutV18_3) }

func MainframeMeasV() []entity.LimitRow { return slices.Clone(mainframeMeasV18_4) }

func MainframeOutI() []entity.LimitRow { return slices.Clone(mainframeOutI18_5) }

func MainframeMeasI() []entity.LimitRow { return slices.Clone(mainframeMeasI18_6) }

func PreampOutILow() []entity.StandardRow { return slices.Clone(preampOutILow18_11) }

func PreampMeasILow() []entity.StandardRow { return slices.Clone(preampMeasILow18_13) }

// ComplianceFor возвращает максимальный compliance для диапазона (18-2).
func ComplianceFor(rangeName string) (ComplianceRow, bool) {
	return lo.Find(compliance18_2, func(row ComplianceRow) bool {
		return row.RangeName == rangeName
	})
}

// All возвращает все таблицы раздела 18 в порядке нумерации.
func All() []Table {
	return []Table{
		{ID: "18-2", Title: "Maximum compliance values", Compliance: slices.Clone(compliance18_2)},
		{ID: "18-3", Title: "Mainframe output voltage accuracy", Rows: MainframeOutV()},
		{ID: "18-4", Title: "Mainframe voltage measurement accuracy", Rows: MainframeMeasV()},
		{ID: "18-5", Title: "Mainframe output current accuracy", Rows: MainframeOutI()},
		{ID: "18-6", Title: "Mainframe current measurement accuracy", Rows: MainframeMeasI()},
		{ID: "18-7", Title: "Mainframe resistance measurement accuracy", Rows: slices.Clone(mainframeMeasR18_7)},
		{ID: "18-8", Title: "Remote PreAmp output voltage accuracy", Rows: slices.Clone(preampOutV18_8)},
		{ID: "18-9", Title: "Remote PreAmp voltage measurement accuracy", Rows: slices.Clone(preampMeasV18_9)},
		{ID: "18-10", Title: "Remote PreAmp 1uA-100mA range output current accuracy", Rows: slices.Clone(preampOutI18_10)},
		{ID: "18-11", Title: "Remote PreAmp 1pA-100nA range output current accuracy", StdRows: PreampOutILow()},
		{ID: "18-12", Title: "Remote PreAmp 1uA-100mA range measurement accuracy", Rows: slices.Clone(preampMeasI18_12)},
		{ID: "18-13", Title: "Remote PreAmp 1pA-100nA range measurement accuracy", StdRows: PreampMeasILow()},
		{ID: "18-14", Title: "Remote PreAmp 20Ω-200MΩ range measurement accuracy", Rows: slices.Clone(preampMeasRLow18_14)},
		{ID: "18-15", Title: "Remote PreAmp 2GΩ-200GΩ range measurement accuracy", StdRows: slices.Clone(preampMeasRHigh18_15)},
		{ID: "18-16", Title: "Remote PreAmp 2TΩ and 20TΩ range measurement accuracy", StdRows: slices.Clone(preampMeasRT18_16)},
	}
}

// ByID находит таблицу по номеру вида "18-3".
func ByID(id string) (Table, error) {
	table, found := lo.Find(All(), func(t Table) bool {
		return t.ID == id
	})
	if !found {
		return Table{}, domain.NewError(errcodes.NotFound, fmt.Sprintf("table %s is not in section 18 registry", id))
	}

	return table, nil
}
