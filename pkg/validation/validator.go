package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps validator.v10 and renders failures as sentence-style
// messages ("First name is required.") in struct field order.
//
// Every rule in a field's `validate` tag runs on its own, so one field can
// report several messages. A leading omitempty skips the field when it is
// zero. Fields name themselves with a `label` tag; the json name is the
// fallback.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(labelOf)
	return &Validator{v: v}
}

// Struct validates s and returns one message per failing rule.
// A nil slice means s is valid.
func (v *Validator) Struct(s any) []string {
	rv := reflect.Indirect(reflect.ValueOf(s))
	if rv.Kind() != reflect.Struct {
		return []string{"invalid payload"}
	}
	rt := rv.Type()

	var out []string
	for i := 0; i < rt.NumField(); i++ {
		fld := rt.Field(i)
		tag := fld.Tag.Get("validate")
		if !fld.IsExported() || tag == "" || tag == "-" {
			continue
		}
		val := rv.Field(i)
		rules := strings.Split(tag, ",")
		if rules[0] == "omitempty" {
			if val.IsZero() {
				continue
			}
			rules = rules[1:]
		}
		label := labelOf(fld)
		for _, rule := range rules {
			err := v.v.Var(val.Interface(), rule)
			if err == nil {
				continue
			}
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) || len(verrs) == 0 {
				out = append(out, label+" is invalid.")
				continue
			}
			out = append(out, format(label, verrs[0]))
		}
	}
	return out
}

func labelOf(fld reflect.StructField) string {
	if label := fld.Tag.Get("label"); label != "" {
		return label
	}
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Message renders a field error using the field's label.
func Message(fe validator.FieldError) string {
	return format(fe.Field(), fe)
}

func format(label string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Invalid email format."
	case "max":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s must not exceed %s.", label, param)
		}
		return fmt.Sprintf("%s must not exceed %s characters.", label, param)
	case "min":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s.", label, param)
		}
		return fmt.Sprintf("%s must be at least %s characters long.", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s.", label, param)
	case "uuid", "uuid4":
		return label + " must be a valid UUID."
	default:
		return label + " is invalid."
	}
}

// ToDetails converts binding errors (malformed JSON, wrong types) into a
// map[field]message suitable for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be of type " + ute.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = Message(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
