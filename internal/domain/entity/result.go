package entity

import (
	"smuverify/internal/domain/value"
)

// PointResult — одна поверенная точка, одна строка выгрузки.
//
// SetValue — номинал точки из таблицы; ActualSet — фактическая уставка
// (показание эталона либо считанная с DUT уставка тока), вокруг которой
// перенесён допуск [Low, High]. Статистики DMM/DUT — среднее и СКО серий;
// NaN, когда в данном тесте сторона не измеряет. Std заполнен только для
// точек малых токов.
type PointResult struct {
	Test      string
	RangeName string
	SetValue  float64
	ActualSet float64
	DMMMean   float64
	DMMStdev  float64
	DUTMean   float64
	DUTStdev  float64
	Low       float64
	High      float64
	Unit      value.Unit
	Verdict   value.Verdict

	Std *Standard
}

func (p PointResult) Passed() bool {
	return p.Verdict == value.VerdictPass
}
