package value

type Unit string

const (
	UnitVolt   Unit = "V"
	UnitAmpere Unit = "A"
	UnitOhm    Unit = "OHM"
)

func (u Unit) String() string {
	return string(u)
}
