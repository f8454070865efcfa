package configs

import "errors"

// Configurable is implemented by config value types that know their own path.
type Configurable interface {
	ConfigPath() string
}

// Get loads the first value at the path T declares, or the zero T when absent.
func Get[T Configurable](loader Loader) T {
	value, _ := Lookup[T](loader)
	return value
}

// Lookup is Get that also reports whether any config file sets the path,
// so an explicit zero can be told apart from an absent value.
func Lookup[T Configurable](loader Loader) (value T, ok bool) {
	if err := loader.AssignFirst(value.ConfigPath(), &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, false
		}
		panic(err)
	}
	return value, true
}
