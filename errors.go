package charts

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidData    = errors.New("invalid chart data")
	ErrInvalidOptions = errors.New("invalid chart options")
	ErrConfiguration  = errors.New("chart configuration conflict")
	ErrParse          = errors.New("data parsing")
)

type DataError struct {
	Message string
}

func emptyLabels() error {
	return DataError{Message: "chart labels cannot be empty"}
}

func emptySeries() error {
	return DataError{Message: "chart series cannot be empty"}
}

func invalidSerie(serie int, reason string) error {
	return DataError{Message: fmt.Sprintf("invalid serie data at index %d: %s", serie, reason)}
}

func (e DataError) Error() string {
	return e.Message
}

func (e DataError) Is(err error) bool {
	return err == ErrInvalidData
}

type LengthError struct {
	Serie    int
	Expected int
	Actual   int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("series length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e LengthError) Is(err error) bool {
	return err == ErrInvalidData
}

type OptionError struct {
	Option string
	Value  any
	Reason string
}

func (e OptionError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("option %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("option %s (%v): %s", e.Option, e.Value, e.Reason)
}

func (e OptionError) Is(err error) bool {
	return err == ErrInvalidOptions
}

type ConfigError struct {
	Message string
}

func tooManySecondary(secondary, total int) error {
	msg := fmt.Sprintf("number of Y2 keys (%d) cannot exceed total series count (%d)", secondary, total)
	return ConfigError{Message: msg}
}

func stackedDualAxis() error {
	return ConfigError{Message: "stacked charts with dual Y-axis are not fully supported"}
}

func (e ConfigError) Error() string {
	return e.Message
}

func (e ConfigError) Is(err error) bool {
	return err == ErrConfiguration
}

type ParseError struct {
	Label string
	Err   error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s cannot be converted to a timestamp", e.Label)
}

func (e ParseError) Is(err error) bool {
	return err == ErrParse
}

func (e ParseError) Unwrap() error {
	return e.Err
}
