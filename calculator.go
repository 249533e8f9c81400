package bordertax

import (
	"math"
	"strconv"
)

// Calculator is an accumulator over a single float64 value.
type Calculator struct {
	value float64
}

// NewCalculator returns a Calculator holding initial.
func NewCalculator(initial float64) *Calculator { return &Calculator{value: initial} }

// Value returns the current value.
func (c *Calculator) Value() float64 { return c.value }

// SetValue overwrites the current value.
func (c *Calculator) SetValue(v float64) { c.value = v }

// Add adds x and returns the new value.
func (c *Calculator) Add(x float64) float64 {
	c.value += x
	return c.value
}

// Multiply multiplies by x and returns the new value.
func (c *Calculator) Multiply(x float64) float64 {
	c.value *= x
	return c.value
}

// Reset sets the value to 0 and returns it.
func (c *Calculator) Reset() float64 {
	c.value = 0
	return c.value
}

// String renders "Calculator(value=<v>)" with the shortest decimal form of v.
func (c *Calculator) String() string {
	return "Calculator(value=" + formatDecimal(c.value) + ")"
}

// formatDecimal never uses an exponent: 3.5, 11, 0, 1000000000000000000000.
func formatDecimal(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
