package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound пользователь отсутствует в базе
	ErrUserNotFound = errors.New("user not found")
	// ErrGroupNotFound группа отсутствует в базе
	ErrGroupNotFound = errors.New("group not found")
)

// FetchError финальная ошибка обращения к апстриму РУЗ после исчерпания ретраев
type FetchError struct {
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ruz fetch failed [status=%d, attempts=%d]: %s", e.StatusCode, e.Attempts, e.URL)
	}
	return fmt.Sprintf("ruz fetch failed [attempts=%d] %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
