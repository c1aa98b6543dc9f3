package entity

import "strconv"

// Standard — эталонный резистор: ключ из конфигурации, номинал из таблицы
// и действительное значение, применённое в расчёте I = V/R.
type Standard struct {
	Key        string  `json:"r_key"`
	NominalOhm float64 `json:"r_nom_ohm"`
	ActualOhm  float64 `json:"r_act_ohm"`
}

// StandardsMap — действительные значения резисторов из конфигурации.
// Ключи вида "100M", "1G", "10G", "100G".
type StandardsMap map[string]float64

// Resolve подбирает эталон для номинала из таблицы. Если действительного
// значения в карте нет, им считается номинал.
func (m StandardsMap) Resolve(nominalOhm float64) Standard {
	key := StandardKey(nominalOhm)

	actual, ok := m[key]
	if !ok {
		actual = nominalOhm
	}

	return Standard{
		Key:        key,
		NominalOhm: nominalOhm,
		ActualOhm:  actual,
	}
}

// StandardKey приводит номинал в омах к короткому ключу: 100e6 -> "100M",
// 1e9 -> "1G", 10e9 -> "10G", 100e9 -> "100G".
func StandardKey(nominalOhm float64) string {
	suffix := ""
	scaled := nominalOhm

	switch {
	case nominalOhm >= 1e12:
		suffix, scaled = "T", nominalOhm/1e12
	case nominalOhm >= 1e9:
		suffix, scaled = "G", nominalOhm/1e9
	case nominalOhm >= 1e6:
		suffix, scaled = "M", nominalOhm/1e6
	case nominalOhm >= 1e3:
		suffix, scaled = "k", nominalOhm/1e3
	}

	return strconv.FormatFloat(scaled, 'f', -1, 64) + suffix
}
