package formula

// IsBetween returns whether start < v <= end. A nil bound does not constrain
// v.
func IsBetween(v Decimal, start, end *Decimal) bool {
	if start != nil && v.Cmp(*start) <= 0 {
		return false
	}
	if end != nil && v.Cmp(*end) > 0 {
		return false
	}
	return true
}

// Clamp limits v to [min, max]. If v is at most min, the result is min;
// otherwise, if v is at least max, the result is max. A nil bound does not
// constrain v. When min > max, min wins.
func Clamp(v Decimal, min, max *Decimal) Decimal {
	if min != nil && v.Cmp(*min) <= 0 {
		return *min
	}
	if max != nil && v.Cmp(*max) >= 0 {
		return *max
	}
	return v
}

// ConvertNull returns *v, or 0 if v is nil.
func ConvertNull(v *Decimal) Decimal {
	if v == nil {
		return Decimal{}
	}
	return *v
}
