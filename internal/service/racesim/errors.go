package racesim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEntrant: характеристика участника вне допустимого диапазона
	ErrInvalidEntrant = errors.New("invalid entrant")
	// ErrDegenerateOutcome: расчетная скорость финишировавшего участника не положительна
	ErrDegenerateOutcome = errors.New("degenerate outcome")
	// ErrInvalidConfig: некорректные параметры заезда
	ErrInvalidConfig = errors.New("invalid race config")
)

// EntrantError привязывает ошибку к конкретному участнику
type EntrantError struct {
	CarID   uint
	CarName string
	Err     error
}

func (e *EntrantError) Error() string {
	return fmt.Sprintf("car #%d (%s): %v", e.CarID, e.CarName, e.Err)
}

func (e *EntrantError) Unwrap() error {
	return e.Err
}

func entrantError(e Entrant, err error) *EntrantError {
	return &EntrantError{CarID: e.CarID, CarName: e.CarName, Err: err}
}
