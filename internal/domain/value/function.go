package value

// Function — измерительная функция прибора: напряжение или ток.
type Function string

const (
	FunctionVoltage Function = "VOLT"
	FunctionCurrent Function = "CURR"
)

func (f Function) String() string {
	return string(f)
}
