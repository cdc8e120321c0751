package transform

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// paramValidator checks decoded rule arguments against their validate tags
// and reports fields by parameter name.
var paramValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.Split(f.Tag.Get("cty"), ",")[0]
	})
	return v
}()

// Params are the keyword arguments of a rule invocation.
type Params map[string]cty.Value

// Decode binds p onto target, a pointer to a struct whose fields carry cty
// tags. Parameters the struct does not declare are rejected. Missing
// parameters are treated as null, which only pointer, slice and map fields
// accept. The decoded struct is then checked against its validate tags.
func (p Params) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	ty, err := gocty.ImpliedType(rv.Elem().Interface())
	if err != nil {
		return fmt.Errorf("unable to infer parameter types: %w", err)
	}
	if !ty.IsObjectType() {
		return fmt.Errorf("decode target must be a struct, got %s", ty.FriendlyName())
	}

	attrs := ty.AttributeTypes()
	for name := range p {
		if _, ok := attrs[name]; !ok {
			return fmt.Errorf("unsupported parameter %q", name)
		}
	}
	vals := make(map[string]cty.Value, len(attrs))
	for name, aty := range attrs {
		if v, ok := p[name]; ok {
			vals[name] = v
		} else {
			vals[name] = cty.NullVal(aty)
		}
	}

	converted, err := convert.Convert(cty.ObjectVal(vals), ty)
	if err != nil {
		return fmt.Errorf("cannot convert parameters to %s: %w", ty.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return err
	}
	return validateParams(target)
}

func validateParams(target any) error {
	err := paramValidator.Struct(target)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("parameter %s: value %q fails '%s'", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ID encodes an item identifier as a parameter value. The sheet encodes as
// null.
func ID(id egraph.ID) cty.Value {
	if id.IsSheet() {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(id.String())
}

// IDs encodes a list of item identifiers as a parameter value.
func IDs(ids ...egraph.ID) cty.Value {
	if len(ids) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ids))
	for i, id := range ids {
		vals[i] = cty.StringVal(id.String())
	}
	return cty.ListVal(vals)
}

// String encodes a text parameter.
func String(s string) cty.Value {
	return cty.StringVal(s)
}

func parseIDs(raw []string) ([]egraph.ID, error) {
	ids := make([]egraph.ID, 0, len(raw))
	for _, s := range raw {
		id, err := egraph.ParseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalID(raw *string) (egraph.ID, error) {
	if raw == nil {
		return egraph.Sheet, nil
	}
	return egraph.ParseID(*raw)
}
