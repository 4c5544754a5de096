package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/settings/settings.go
//   type Settings struct {
//       ...
//       SoundVolume float64 `json:"soundVolume" validate:"gte=0,lte=1"`
//       Theme       string  `json:"theme" validate:"theme_id"`
//   }
//
// Packages owning a domain vocabulary (themes, comment kinds) register their
// own tags through RegisterFunc so the rules stay next to the data.

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
	registerMu    sync.Mutex
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// RegisterFunc adds a string-valued custom tag. Registration must happen
// before validation starts, typically from an init function.
func RegisterFunc(tag string, ok func(value string) bool) error {
	registerMu.Lock()
	defer registerMu.Unlock()
	return get().RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
}

// FieldErrors returns the namespaced names of the failing fields in err, or
// nil when err is not a validation error.
func FieldErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the concrete slice type
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
