package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their config key, e.g. server.max_request_size.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	// The app id becomes one segment of every saved document path.
	_ = v.RegisterValidation("pathsegment", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && !strings.ContainsAny(s, "/ ")
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config) //nolint:forcetypeassert // registered for Config only
		if cfg.Client.Timeout > cfg.Server.RequestTimeout {
			sl.ReportError(cfg.Client.Timeout, "client.timeout", "Timeout", "ltefield", "server.request_timeout")
		}
	}, Config{})

	return v
}

// Validate checks the loaded configuration. The service refuses to start on
// any failure.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := fieldKey(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "url":
		return key + " must be a valid URL"
	case "pathsegment":
		return key + " must be non-empty and contain no slashes or spaces"
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}
}

// fieldKey drops the root type from a validator namespace:
// "Config.server.port" becomes "server.port".
func fieldKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
