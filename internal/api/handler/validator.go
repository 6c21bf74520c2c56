package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const msgInvalidPayload = "Invalid request payload"

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in messages are taken from json tags.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, message(fe))
			}
			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}

const (
	msgNameRequired        = "Name is required"
	msgNameLength          = "Name must be between 1 and 100 characters"
	msgEmailRequired       = "Email is required"
	msgEmailInvalid        = "Please provide a valid email address"
	msgPasswordRequired    = "Password is required"
	msgPasswordLength      = "Password must be at least 6 characters"
	msgProductNameRequired = "Product name is required"
	msgProductNameLength   = "Product name must be between 2 and 200 characters"
	msgDescriptionRequired = "Product description is required"
	msgDescriptionLength   = "Description must be between 10 and 2000 characters"
	msgPriceRequired       = "Price is required"
	msgPriceNumber         = "Price must be a number"
	msgPriceNegative       = "Price cannot be negative"
	msgStockRequired       = "Stock is required"
	msgStockInteger        = "Stock must be a non-negative integer"
	msgImageURLInvalid     = "Image URL must be a valid URL"
)

// fieldMessages is the client-facing text per request field and rule, keyed
// by "<struct>.<Field>.<tag>". Anything missing falls back to fieldError.
var fieldMessages = map[string]string{
	"registerRequest.Name.required":     msgNameRequired,
	"registerRequest.Name.min":          msgNameLength,
	"registerRequest.Name.max":          msgNameLength,
	"registerRequest.Email.required":    msgEmailRequired,
	"registerRequest.Email.email":       msgEmailInvalid,
	"registerRequest.Password.required": msgPasswordRequired,
	"registerRequest.Password.min":      msgPasswordLength,

	"loginRequest.Email.required":    msgEmailRequired,
	"loginRequest.Email.email":       msgEmailInvalid,
	"loginRequest.Password.required": msgPasswordRequired,

	"updateProfileRequest.Name.min":     msgNameLength,
	"updateProfileRequest.Name.max":     msgNameLength,
	"updateProfileRequest.Email.email":  msgEmailInvalid,
	"updateProfileRequest.Password.min": msgPasswordLength,

	"createProductRequest.Name.required":        msgProductNameRequired,
	"createProductRequest.Name.min":             msgProductNameLength,
	"createProductRequest.Name.max":             msgProductNameLength,
	"createProductRequest.Description.required": msgDescriptionRequired,
	"createProductRequest.Description.min":      msgDescriptionLength,
	"createProductRequest.Description.max":      msgDescriptionLength,
	"createProductRequest.Price.required":       msgPriceRequired,
	"createProductRequest.Price.gte":            msgPriceNegative,
	"createProductRequest.Stock.required":       msgStockRequired,
	"createProductRequest.Stock.gte":            msgStockInteger,
	"createProductRequest.ImageURL.url":         msgImageURLInvalid,

	"updateProductRequest.Name.min":        msgProductNameLength,
	"updateProductRequest.Name.max":        msgProductNameLength,
	"updateProductRequest.Description.min": msgDescriptionLength,
	"updateProductRequest.Description.max": msgDescriptionLength,
	"updateProductRequest.Price.gte":       msgPriceNegative,
	"updateProductRequest.Stock.gte":       msgStockInteger,
	"updateProductRequest.ImageURL.url":    msgImageURLInvalid,
}

// typeMessages covers JSON fields sent with the wrong type, keyed by json name.
var typeMessages = map[string]string{
	"price": msgPriceNumber,
	"stock": msgStockInteger,
}

func message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}
	return fieldError(fe)
}

// fieldError converts a single ValidationError into a generic message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "gte":
		if fe.Param() == "0" {
			return field + " cannot be negative"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s %s", field, fe.Param(), plural("character", fe.Param()))
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s %s", field, fe.Param(), plural("character", fe.Param()))
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func plural(word, n string) string {
	if n == "1" {
		return word
	}
	return word + "s"
}

// bindError turns a c.Bind failure into a 400. A body that is valid JSON but
// carries a wrongly typed field is reported by field name.
func bindError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return echo.NewHTTPError(http.StatusBadRequest, typeMessage(ute))
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && errors.As(he.Internal, &ute) && ute.Field != "" {
		return echo.NewHTTPError(http.StatusBadRequest, typeMessage(ute)).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload).SetInternal(err)
}

func typeMessage(ute *json.UnmarshalTypeError) string {
	if msg, ok := typeMessages[ute.Field]; ok {
		return msg
	}
	switch ute.Type.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return ute.Field + " must be an integer"
	case reflect.Float64, reflect.Float32:
		return ute.Field + " must be a number"
	case reflect.String:
		return ute.Field + " must be a string"
	default:
		return ute.Field + " has an invalid type"
	}
}
