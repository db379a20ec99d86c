package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Struct valida un DTO contra sus etiquetas `validate`. Es el paso único de
// parse-and-validate que corre en los handlers antes de cualquier lógica de
// negocio.
func Struct(s interface{}) error {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v.Struct(s)
}
