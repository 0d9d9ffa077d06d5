package formula

import "github.com/pkg/errors"

// Field is an optional decimal field of a record.
type Field struct {
	// Name identifies the field in errors.
	Name string
	// Get returns the field's current value, or nil if it is unset.
	Get func() *Decimal
	// Set replaces the field's value.
	Set func(*Decimal)
}

// Fielder is a record with optional decimal fields. A type embedding another
// Fielder includes the embedded type's fields in its own.
type Fielder interface {
	DecimalFields() []Field
}

// Ref is a shortcut to create a Field for a variable.
func Ref(name string, p **Decimal) Field {
	return Field{
		Name: name,
		Get:  func() *Decimal { return *p },
		Set:  func(v *Decimal) { *p = v },
	}
}

// ApplyFields replaces each field of v with the result of fn on it. It stops
// at the first error, leaving that field and later ones unchanged.
func ApplyFields(v Fielder, fn func(*Decimal) (*Decimal, error)) error {
	for _, f := range v.DecimalFields() {
		r, err := fn(f.Get())
		if err != nil {
			return errors.Wrapf(err, "field %s", f.Name)
		}
		f.Set(r)
	}
	return nil
}

// ZeroNullFields sets every unset field of v to 0.
func ZeroNullFields(v Fielder) {
	// The function never fails.
	_ = ApplyFields(v, func(d *Decimal) (*Decimal, error) {
		if d != nil {
			return d, nil
		}
		return new(Decimal), nil
	})
}

// FormatFields rounds every set field of v to the scale with trailing zeros
// stripped. Unset fields stay unset.
func (a *Arithmetic) FormatFields(v Fielder) error {
	return ApplyFields(v, a.Format)
}
