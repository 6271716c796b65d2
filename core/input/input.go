// Package input parses the free-text scalar inputs of a simulation run.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kilianp07/gridsim/core/grid"
)

const (
	DefaultStorageCapacity = "50"
	DefaultTimeStep        = "1"
)

// ErrInvalidInput carries the message shown to users for non-numeric inputs.
var ErrInvalidInput = errors.New("Invalid input. Please enter numeric values.") //nolint:staticcheck

// FieldError names the input that failed to parse.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// ParseParams converts the storage capacity and time step texts to simulation
// parameters.
func ParseParams(capacity, timeStep string) (grid.Params, error) {
	c, err := parseFloat("storage_capacity", capacity)
	if err != nil {
		return grid.Params{}, err
	}
	ts, err := parseFloat("time_step", timeStep)
	if err != nil {
		return grid.Params{}, err
	}
	return grid.Params{StorageCapacity: c, TimeStepHours: ts}, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
	}
	if err != nil {
		return 0, &FieldError{Field: field, Value: s}
	}
	return v, nil
}
