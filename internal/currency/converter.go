package currency

// Direction selects which way Convert moves an amount between the base
// currency and the secondary currency.
type Direction int

const (
	ToSecondary Direction = iota
	ToBase
)

// Convert converts an amount using the supplied exchange rate. ToSecondary
// multiplies, ToBase divides. A rate that is not yet resolved (zero or
// negative) is treated as 1 so the caller never divides by zero; figures
// produced with the identity rate are provisional.
func Convert(amount, rate float64, dir Direction) float64 {
	if rate <= 0 {
		rate = 1
	}
	if dir == ToBase {
		return amount / rate
	}
	return amount * rate
}
