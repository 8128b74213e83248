package infinity

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Change returns the percent change between two values, so a move from 100
// to 110 is 10%.
func Change(from, to Money) Percent {
	if from.IsZero() {
		return 0
	}
	return Percent(to.Sub(from).value.Div(from.value).InexactFloat64() * 100)
}
