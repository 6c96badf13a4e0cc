package config

import (
	"os"
	"strconv"
	"time"

	"github.com/drone/envsubst"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var getEnv = os.Getenv

// interpolate decodes a scalar as a string and expands the environment
// variables it references.
func interpolate(unmarshal func(any) error) (string, error) {
	var str string

	if err := unmarshal(&str); err != nil {
		return "", errors.WithStack(err)
	}

	str, err := envsubst.Eval(str, getEnv)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return str, nil
}

// interpolateAs interpolates a scalar then converts it with parse.
func interpolateAs[T any](unmarshal func(any) error, parse func(string) (T, error)) (T, error) {
	str, err := interpolate(unmarshal)
	if err != nil {
		return *new(T), errors.WithStack(err)
	}

	value, err := parse(str)
	if err != nil {
		return *new(T), errors.Wrapf(err, "could not parse '%s'", str)
	}

	return value, nil
}

type InterpolatedString string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (is *InterpolatedString) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	*is = InterpolatedString(str)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedString)

type InterpolatedInt int

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ii *InterpolatedInt) UnmarshalYAML(unmarshal func(any) error) error {
	value, err := interpolateAs(unmarshal, strconv.Atoi)
	if err != nil {
		return errors.WithStack(err)
	}

	*ii = InterpolatedInt(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedInt)

type InterpolatedFloat float64

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ifl *InterpolatedFloat) UnmarshalYAML(unmarshal func(any) error) error {
	value, err := interpolateAs(unmarshal, func(str string) (float64, error) {
		return strconv.ParseFloat(str, 64)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	*ifl = InterpolatedFloat(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedFloat)

type InterpolatedBool bool

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ib *InterpolatedBool) UnmarshalYAML(unmarshal func(any) error) error {
	value, err := interpolateAs(unmarshal, strconv.ParseBool)
	if err != nil {
		return errors.WithStack(err)
	}

	*ib = InterpolatedBool(value)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedBool)

// InterpolatedMap holds free form options, every string of which is
// expanded, at any depth.
type InterpolatedMap struct {
	Data map[string]any
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (im *InterpolatedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var data map[string]any

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	interpolated, err := interpolateValue(data)
	if err != nil {
		return errors.WithStack(err)
	}

	im.Data, _ = interpolated.(map[string]any)

	return nil
}

func (im *InterpolatedMap) MarshalYAML() (any, error) {
	return im.Data, nil
}

var (
	_ yaml.InterfaceUnmarshaler = new(InterpolatedMap)
	_ yaml.InterfaceMarshaler   = new(InterpolatedMap)
)

func interpolateValue(data any) (any, error) {
	switch typ := data.(type) {
	case map[string]any:
		for key, value := range typ {
			value, err := interpolateValue(value)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[key] = value
		}

	case []any:
		for idx := range typ {
			value, err := interpolateValue(typ[idx])
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[idx] = value
		}

	case string:
		value, err := envsubst.Eval(typ, getEnv)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return value, nil
	}

	return data, nil
}

type InterpolatedStringSlice []string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (iss *InterpolatedStringSlice) UnmarshalYAML(unmarshal func(any) error) error {
	var data []string

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	for index, value := range data {
		value, err := envsubst.Eval(value, getEnv)
		if err != nil {
			return errors.WithStack(err)
		}

		data[index] = value
	}

	*iss = data

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedStringSlice)

// InterpolatedDuration accepts Go durations ("168h") as well as a number of
// nanoseconds.
type InterpolatedDuration time.Duration

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (id *InterpolatedDuration) UnmarshalYAML(unmarshal func(any) error) error {
	value, err := interpolateAs(unmarshal, parseDuration)
	if err != nil {
		return errors.WithStack(err)
	}

	*id = InterpolatedDuration(value)

	return nil
}

func parseDuration(str string) (time.Duration, error) {
	if duration, err := time.ParseDuration(str); err == nil {
		return duration, nil
	}

	nanoseconds, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return time.Duration(nanoseconds), nil
}

func (id *InterpolatedDuration) MarshalYAML() (any, error) {
	return time.Duration(*id).String(), nil
}

var (
	_ yaml.InterfaceUnmarshaler = new(InterpolatedDuration)
	_ yaml.InterfaceMarshaler   = new(InterpolatedDuration)
)

func NewInterpolatedDuration(d time.Duration) *InterpolatedDuration {
	id := InterpolatedDuration(d)
	return &id
}
