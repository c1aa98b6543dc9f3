package entity

import (
	"smuverify/internal/domain/value"
)

// LimitRow — строка допусковой таблицы: диапазон, уставка и допуск
// [Low, High] вокруг номинала.
type LimitRow struct {
	RangeName string     `json:"range_name"`
	SetValue  float64    `json:"set_value"`
	Low       float64    `json:"low"`
	High      float64    `json:"high"`
	Unit      value.Unit `json:"unit"`
}

// StandardRow — строка таблицы, где величина воспроизводится через
// эталонный резистор с номиналом RNominal: малые токи (I = V/R) и
// большие сопротивления.
type StandardRow struct {
	LimitRow
	RNominal float64 `json:"r_nominal_ohm"`
}

// Band — интервал допуска, перенесённый к фактической уставке.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ShiftTo переносит допуск к фактически выставленному значению по методу
// «ближайшего значения»: плечи относительно номинала сохраняются, значит
// сохраняется и ширина интервала.
func (r LimitRow) ShiftTo(actual float64) Band {
	return Band{
		Low:  actual - (r.SetValue - r.Low),
		High: actual + (r.High - r.SetValue),
	}
}

// Contains — попадание в интервал, границы включительно.
func (b Band) Contains(x float64) bool {
	return x >= b.Low && x <= b.High
}

func (b Band) Span() float64 {
	return b.High - b.Low
}
