package configurator

import (
	"net/http"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/carquote/internal/common"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

type selectionRequest struct {
	Selected []string `json:"selected" validate:"max=128,dive,required,max=64"`
	Color    string   `json:"color" validate:"max=64"`
}

type choicesRequest struct {
	Selected []string `json:"selected" validate:"max=128,dive,required,max=64"`
}

type toggleRequest struct {
	Code     string   `json:"code" validate:"required,max=64"`
	Selected []string `json:"selected" validate:"max=128,dive,required,max=64"`
	Color    string   `json:"color" validate:"max=64"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// decodeRequest decodes and validates a JSON body into dst.
func decodeRequest(r *http.Request, dst any) error {
	if err := common.DecodeJSON(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return common.InvalidRequest(err, nil)
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			fields = append(fields, FieldError{Field: fe.Field(), Rule: rule})
		}
		return common.InvalidRequest(err, map[string]any{"fields": fields})
	}
	return nil
}
