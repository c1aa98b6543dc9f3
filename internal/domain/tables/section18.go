package tables

import (
	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
)

// Данные таблиц раздела 18 Keithley 6430 Reference Manual (Jan 2021).
// Таблицы зашиты как данные и наружу отдаются только копиями (registry.go).

//nolint:gochecknoglobals
var compliance18_2 = []ComplianceRow{
	{RangeName: "200mV", Unit: value.UnitVolt, Max: 0.210},
	{RangeName: "2V", Unit: value.UnitVolt, Max: 2.1},
	{RangeName: "20V", Unit: value.UnitVolt, Max: 21.0},
	{RangeName: "200V", Unit: value.UnitVolt, Max: 210.0},
	{RangeName: "1pA", Unit: value.UnitAmpere, Max: 1.05e-12},
	{RangeName: "10pA", Unit: value.UnitAmpere, Max: 10.5e-12},
	{RangeName: "100pA", Unit: value.UnitAmpere, Max: 105e-12},
	{RangeName: "1nA", Unit: value.UnitAmpere, Max: 1.05e-9},
	{RangeName: "10nA", Unit: value.UnitAmpere, Max: 10.5e-9},
	{RangeName: "100nA", Unit: value.UnitAmpere, Max: 105e-9},
	{RangeName: "1uA", Unit: value.UnitAmpere, Max: 1.05e-6},
	{RangeName: "10uA", Unit: value.UnitAmpere, Max: 10.5e-6},
	{RangeName: "100uA", Unit: value.UnitAmpere, Max: 105e-6},
	{RangeName: "1mA", Unit: value.UnitAmpere, Max: 1.05e-3},
	{RangeName: "10mA", Unit: value.UnitAmpere, Max: 10.5e-3},
	{RangeName: "100mA", Unit: value.UnitAmpere, Max: 0.105},
}

//nolint:gochecknoglobals
var mainframeOutV18_3 = []entity.LimitRow{
	{RangeName: "200mV", SetValue: 0.200000, Low: 0.199360, High: 0.200640, Unit: value.UnitVolt},
	{RangeName: "2V", SetValue: 2.00000, Low: 1.99900, High: 2.00100, Unit: value.UnitVolt},
	{RangeName: "20V", SetValue: 20.0000, Low: 19.9936, High: 20.0064, Unit: value.UnitVolt},
	{RangeName: "200V", SetValue: 200.000, Low: 199.936, High: 200.064, Unit: value.UnitVolt},
}

//nolint:gochecknoglobals
var mainframeMeasV18_4 = []entity.LimitRow{
	{RangeName: "200mV", SetValue: 0.200000, Low: 0.199626, High: 0.200374, Unit: value.UnitVolt},
	{RangeName: "2V", SetValue: 2.00000, Low: 1.99941, High: 2.00059, Unit: value.UnitVolt},
	{RangeName: "20V", SetValue: 20.0000, Low: 19.9955, High: 20.0045, Unit: value.UnitVolt},
	{RangeName: "200V", SetValue: 200.000, Low: 199.960, High: 200.040, Unit: value.UnitVolt},
}

//nolint:gochecknoglobals
var mainframeOutI18_5 = []entity.LimitRow{
	{RangeName: "1uA", SetValue: 1.00000e-6, Low: 0.99905e-6, High: 1.00095e-6, Unit: value.UnitAmpere},
	{RangeName: "10uA", SetValue: 10.0000e-6, Low: 9.9947e-6, High: 10.0053e-6, Unit: value.UnitAmpere},
	{RangeName: "100uA", SetValue: 100.000e-6, Low: 99.949e-6, High: 100.051e-6, Unit: value.UnitAmpere},
	{RangeName: "1mA", SetValue: 1.00000e-3, Low: 0.99946e-3, High: 1.00054e-3, Unit: value.UnitAmpere},
	{RangeName: "10mA", SetValue: 10.0000e-3, Low: 9.9935e-3, High: 10.0065e-3, Unit: value.UnitAmpere},
	{RangeName: "100mA", SetValue: 0.100000, Low: 0.099914, High: 0.100086, Unit: value.UnitAmpere},
}

//nolint:gochecknoglobals
var mainframeMeasI18_6 = []entity.LimitRow{
	{RangeName: "1uA", SetValue: 1.000000e-6, Low: 0.99920e-6, High: 1.00080e-6, Unit: value.UnitAmpere},
	{RangeName: "10uA", SetValue: 10.00000e-6, Low: 9.9930e-6, High: 10.0070e-6, Unit: value.UnitAmpere},
	{RangeName: "100uA", SetValue: 100.000e-6, Low: 99.969e-6, High: 100.031e-6, Unit: value.UnitAmpere},
	{RangeName: "1mA", SetValue: 1.00000e-3, Low: 0.99967e-3, High: 1.00033e-3, Unit: value.UnitAmpere},
	{RangeName: "10mA", SetValue: 10.0000e-3, Low: 9.9959e-3, High: 10.0041e-3, Unit: value.UnitAmpere},
	{RangeName: "100mA", SetValue: 0.100000, Low: 0.099939, High: 0.100061, Unit: value.UnitAmpere},
}

// Лимиты 18-7 рассчитаны в мануале под эталон 5450A. При поверке с 5156 и
// дискретными резисторами границы используются как есть.
//
//nolint:gochecknoglobals
var mainframeMeasR18_7 = []entity.LimitRow{
	{RangeName: "20Ω", SetValue: 19.0, Low: 18.920, High: 19.080, Unit: value.UnitOhm},
	{RangeName: "200Ω", SetValue: 190.0, Low: 189.950, High: 190.050, Unit: value.UnitOhm},
	{RangeName: "2kΩ", SetValue: 1900.0, Low: 1899.70, High: 1900.30, Unit: value.UnitOhm},
	{RangeName: "20kΩ", SetValue: 19000.0, Low: 18997.0, High: 19003.0, Unit: value.UnitOhm},
	{RangeName: "200kΩ", SetValue: 190000.0, Low: 189960.0, High: 190040.0, Unit: value.UnitOhm},
	{RangeName: "2MΩ", SetValue: 1.9e6, Low: 1.89950e6, High: 1.90050e6, Unit: value.UnitOhm},
	{RangeName: "20MΩ", SetValue: 19e6, Low: 18.9950e6, High: 19.0050e6, Unit: value.UnitOhm},
}

//nolint:gochecknoglobals
var preampOutV18_8 = []entity.LimitRow{
	{RangeName: "200mV", SetValue: 0.200000, Low: 0.199360, High: 0.200640, Unit: value.UnitVolt},
	{RangeName: "2V", SetValue: 2.00000, Low: 1.99900, High: 2.00100, Unit: value.UnitVolt},
	{RangeName: "20V", SetValue: 20.0000, Low: 19.9936, High: 20.0064, Unit: value.UnitVolt},
	{RangeName: "200V", SetValue: 200.000, Low: 199.936, High: 200.064, Unit: value.UnitVolt},
}

//nolint:gochecknoglobals
var preampMeasV18_9 = []entity.LimitRow{
	{RangeName: "200mV", SetValue: 0.200000, Low: 0.199626, High: 0.200374, Unit: value.UnitVolt},
	{RangeName: "2V", SetValue: 2.00000, Low: 1.99941, High: 2.00059, Unit: value.UnitVolt},
	{RangeName: "20V", SetValue: 20.0000, Low: 19.9955, High: 20.0045, Unit: value.UnitVolt},
	{RangeName: "200V", SetValue: 200.000, Low: 199.960, High: 200.040, Unit: value.UnitVolt},
}

//nolint:gochecknoglobals
var preampOutI18_10 = []entity.LimitRow{
	{RangeName: "1uA", SetValue: 1.00000e-6, Low: 0.99920e-6, High: 1.00080e-6, Unit: value.UnitAmpere},
	{RangeName: "10uA", SetValue: 10.0000e-6, Low: 9.9930e-6, High: 10.0070e-6, Unit: value.UnitAmpere},
	{RangeName: "100uA", SetValue: 100.000e-6, Low: 99.949e-6, High: 100.051e-6, Unit: value.UnitAmpere},
	{RangeName: "1mA", SetValue: 1.00000e-3, Low: 0.99946e-3, High: 1.00054e-3, Unit: value.UnitAmpere},
	{RangeName: "10mA", SetValue: 10.0000e-3, Low: 9.9935e-3, High: 10.0065e-3, Unit: value.UnitAmpere},
	{RangeName: "100mA", SetValue: 0.100000, Low: 0.099914, High: 0.100086, Unit: value.UnitAmpere},
}

// Лимиты 18-11 и 18-13 уже включают погрешность аттестации резисторов 5156.
//
//nolint:gochecknoglobals
var preampOutILow18_11 = []entity.StandardRow{
	{LimitRow: entity.LimitRow{RangeName: "1pA", SetValue: 1.00000e-12, Low: 0.97950e-12, High: 1.02050e-12, Unit: value.UnitAmpere}, RNominal: 100e9},
	{LimitRow: entity.LimitRow{RangeName: "10pA", SetValue: 10.0000e-12, Low: 9.9150e-12, High: 10.0085e-12, Unit: value.UnitAmpere}, RNominal: 100e9},
	{LimitRow: entity.LimitRow{RangeName: "100pA", SetValue: 100.000e-12, Low: 99.770e-12, High: 100.230e-12, Unit: value.UnitAmpere}, RNominal: 10e9},
	{LimitRow: entity.LimitRow{RangeName: "1nA", SetValue: 1.00000e-9, Low: 0.99900e-9, High: 1.00100e-9, Unit: value.UnitAmpere}, RNominal: 1e9},
	{LimitRow: entity.LimitRow{RangeName: "10nA", SetValue: 10.0000e-9, Low: 9.9990e-9, High: 10.0100e-9, Unit: value.UnitAmpere}, RNominal: 1e9},
	{LimitRow: entity.LimitRow{RangeName: "100nA", SetValue: 100.000e-9, Low: 99.910e-9, High: 100.090e-9, Unit: value.UnitAmpere}, RNominal: 100e6},
}

//nolint:gochecknoglobals
var preampMeasI18_12 = mainframeMeasI18_6

//nolint:gochecknoglobals
var preampMeasILow18_13 = []entity.StandardRow{
	{LimitRow: entity.LimitRow{RangeName: "1pA", SetValue: 1.000000e-12, Low: 0.98300e-12, High: 1.01700e-12, Unit: value.UnitAmpere}, RNominal: 100e9},
	{LimitRow: entity.LimitRow{RangeName: "10pA", SetValue: 10.00000e-12, Low: 9.9430e-12, High: 10.0570e-12, Unit: value.UnitAmpere}, RNominal: 100e9},
	{LimitRow: entity.LimitRow{RangeName: "100pA", SetValue: 100.000e-12, Low: 99.820e-12, High: 100.180e-12, Unit: value.UnitAmpere}, RNominal: 10e9},
	{LimitRow: entity.LimitRow{RangeName: "1nA", SetValue: 1.00000e-9, Low: 0.99930e-9, High: 1.00070e-9, Unit: value.UnitAmpere}, RNominal: 1e9},
	{LimitRow: entity.LimitRow{RangeName: "10nA", SetValue: 10.0000e-9, Low: 9.9930e-9, High: 10.0070e-9, Unit: value.UnitAmpere}, RNominal: 1e9},
	{LimitRow: entity.LimitRow{RangeName: "100nA", SetValue: 100.000e-9, Low: 99.930e-9, High: 100.070e-9, Unit: value.UnitAmpere}, RNominal: 100e6},
}

//nolint:gochecknoglobals
var preampMeasRLow18_14 = []entity.LimitRow{
	{RangeName: "20Ω", SetValue: 19.0, Low: 18.920, High: 19.080, Unit: value.UnitOhm},
	{RangeName: "200Ω", SetValue: 190.0, Low: 189.950, High: 190.050, Unit: value.UnitOhm},
	{RangeName: "2kΩ", SetValue: 1900.0, Low: 1899.70, High: 1900.30, Unit: value.UnitOhm},
	{RangeName: "20kΩ", SetValue: 19000.0, Low: 18997.0, High: 19003.0, Unit: value.UnitOhm},
	{RangeName: "200kΩ", SetValue: 190000.0, Low: 189960.0, High: 190040.0, Unit: value.UnitOhm},
	{RangeName: "2MΩ", SetValue: 1.9e6, Low: 1.89950e6, High: 1.90050e6, Unit: value.UnitOhm},
	{RangeName: "20MΩ", SetValue: 19e6, Low: 18.9950e6, High: 19.0050e6, Unit: value.UnitOhm},
	{RangeName: "200MΩ", SetValue: 190e6, Low: 189.916e6, High: 190.084e6, Unit: value.UnitOhm},
}

//nolint:gochecknoglobals
var preampMeasRHigh18_15 = []entity.StandardRow{
	{LimitRow: entity.LimitRow{RangeName: "2GΩ", SetValue: 2.00000e9, Low: 1.9200e9, High: 2.0800e9, Unit: value.UnitOhm}, RNominal: 1e9},
	{LimitRow: entity.LimitRow{RangeName: "20GΩ", SetValue: 20.0000e9, Low: 19.503e9, High: 20.497e9, Unit: value.UnitOhm}, RNominal: 10e9},
	{LimitRow: entity.LimitRow{RangeName: "200GΩ", SetValue: 200.000e9, Low: 195.03e9, High: 204.97e9, Unit: value.UnitOhm}, RNominal: 100e9},
}

//nolint:gochecknoglobals
var preampMeasRT18_16 = []entity.StandardRow{
	{LimitRow: entity.LimitRow{RangeName: "2TΩ", SetValue: 2.00000e12, Low: 1.9110e12, High: 2.0890e12, Unit: value.UnitOhm}, RNominal: 1e12},
	{LimitRow: entity.LimitRow{RangeName: "20TΩ", SetValue: 20.0000e12, Low: 18.890e12, High: 21.110e12, Unit: value.UnitOhm}, RNominal: 10e12},
}
