package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Validator is one named, pure step of a trait's validation pipeline. Check
// receives an already coerced value and either returns it (possibly
// normalized further) or an error explaining the rejection. Checks must be
// deterministic and free of side effects beyond the value itself.
type Validator struct {
	Name  string
	Check func(cty.Value) (cty.Value, error)
}

// Positive rejects numbers that are not strictly greater than zero.
func Positive() Validator {
	return Validator{
		Name: "isPositive",
		Check: func(v cty.Value) (cty.Value, error) {
			if v.AsBigFloat().Sign() <= 0 {
				return cty.NilVal, fmt.Errorf("received %s", DisplayValue(v))
			}
			return v, nil
		},
	}
}

// NonNegative rejects numbers below zero.
func NonNegative() Validator {
	return Validator{
		Name: "isNonNegative",
		Check: func(v cty.Value) (cty.Value, error) {
			if v.AsBigFloat().Sign() < 0 {
				return cty.NilVal, fmt.Errorf("received %s", DisplayValue(v))
			}
			return v, nil
		},
	}
}

// NonEmpty rejects empty strings.
func NonEmpty() Validator {
	return Validator{
		Name: "isNonEmpty",
		Check: func(v cty.Value) (cty.Value, error) {
			if v.AsString() == "" {
				return cty.NilVal, fmt.Errorf("received an empty string")
			}
			return v, nil
		},
	}
}

// OneOf rejects strings outside the given choice set.
func OneOf(choices ...string) Validator {
	return Validator{
		Name: "isOneOf",
		Check: func(v cty.Value) (cty.Value, error) {
			s := v.AsString()
			for _, c := range choices {
				if s == c {
					return v, nil
				}
			}
			return cty.NilVal, fmt.Errorf("received %q, want one of %v", s, choices)
		},
	}
}

// InRange rejects numbers outside the inclusive [lo, hi] interval.
func InRange(lo, hi float64) Validator {
	return Validator{
		Name: "isInRange",
		Check: func(v cty.Value) (cty.Value, error) {
			f, _ := v.AsBigFloat().Float64()
			if f < lo || f > hi {
				return cty.NilVal, fmt.Errorf("received %s, want within [%v, %v]", DisplayValue(v), lo, hi)
			}
			return v, nil
		},
	}
}
