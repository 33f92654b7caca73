// Package storage общие ошибки драйверов хранилища бронирований
package storage

import "errors"

var (
	// ErrRowMoved строка по индексу снимка больше не содержит ожидаемый booking id
	ErrRowMoved = errors.New("storage: row moved since snapshot")

	// ErrRequest ошибка обращения к хранилищу
	ErrRequest = errors.New("storage: request failed")

	// ErrSchema содержимое хранилища не соответствует схеме бронирований
	ErrSchema = errors.New("storage: schema mismatch")
)
