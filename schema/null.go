package schema

import (
	"encoding/json"
	"math"
)

// NullFloat - a float which may be missing. Missing values are encoded as
// null and never as NaN or Inf.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat, or a missing one when f is NaN or Inf.
func Float(f float64) NullFloat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullFloat{}
	}
	return NullFloat{Float64: f, Valid: true}
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Float(f)
	return nil
}
