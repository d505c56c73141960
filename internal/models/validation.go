package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a value falls outside its required domain
var ErrOutOfRange = errors.New("value out of range")

// checkFinite fails on NaN and ±Inf
func checkFinite(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number, got %v: %w", name, value, ErrOutOfRange)
	}
	return nil
}

// checkNonNegative fails when value < 0 or is not finite
func checkNonNegative(name string, value float64) error {
	if err := checkFinite(name, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%s must not be negative, got %v: %w", name, value, ErrOutOfRange)
	}
	return nil
}

// checkStrictlyPositive fails when value <= 0 or is not finite
func checkStrictlyPositive(name string, value float64) error {
	if err := checkFinite(name, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%s must be greater than 0, got %v: %w", name, value, ErrOutOfRange)
	}
	return nil
}
