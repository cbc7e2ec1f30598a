package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const invalidBodyMessage = "invalid request body"

// bindingMessage turns a ShouldBindJSON error into a client message that
// names the JSON field of req rather than the Go one.
func bindingMessage(err error, req any) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		name := jsonName(req, fe.StructField())
		if fe.Tag() == "required" {
			return name + " is required"
		}
		return name + " is invalid"
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has an invalid type"
	}
	return invalidBodyMessage
}

func jsonName(req any, field string) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(field); ok {
		if name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
	}
	return field
}
