package wildberries

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxExactInt mayor entero que float64 representa sin pérdida (2^53).
const maxExactInt = 1 << 53

// flexFloat acepta número, texto numérico o null. Cualquier otra cosa deja
// el valor como ausente en lugar de romper la decodificación; "NaN" e "Inf"
// también cuentan como ausentes.
type flexFloat struct {
	v  float64
	ok bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		f.set(s)
		return nil
	}
	f.set(string(b))
	return nil
}

func (f *flexFloat) set(s string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	*f = flexFloat{v: v, ok: true}
}

func (f flexFloat) ptr() *float64 {
	if !f.ok {
		return nil
	}
	v := f.v
	return &v
}

// flexInt trunca valores fraccionales; fuera de ±2^53 queda ausente.
type flexInt struct{ flexFloat }

func (i flexInt) ptr() *int {
	v, ok := i.int64()
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}

func (i flexInt) int64() (int64, bool) {
	if !i.ok || math.Abs(i.v) > maxExactInt {
		return 0, false
	}
	return int64(i.v), true
}

// flexString acepta texto o número (ids que a veces llegan como número).
type flexString struct {
	v  string
	ok bool
}

func (s *flexString) UnmarshalJSON(b []byte) error {
	*s = flexString{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = flexString{v: v, ok: true}
		}
		return nil
	}
	if b[0] == '-' || (b[0] >= '0' && b[0] <= '9') {
		*s = flexString{v: string(b), ok: true}
	}
	return nil
}

func (s flexString) ptr() *string {
	if !s.ok {
		return nil
	}
	v := s.v
	return &v
}

func (s flexString) String() string { return s.v }
