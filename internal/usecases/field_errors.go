package usecases

import (
	"errors"
	"strings"

	domainerrors "dragon-roster.backend/internal/domain/errors"
)

// maxSmallInt is the largest value the smallint columns (seat number,
// height, weight) can store.
const maxSmallInt = 32767

// fieldErrors collects input problems keyed by field so a request reports
// all of them at once.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return domainerrors.ValidationFields(f)
}

// requireText checks a string field; absent values only fail when the
// field is required.
func (f fieldErrors) requireText(field string, v *string, required bool) {
	if v == nil {
		if required {
			f.add(field, domainerrors.MsgRequired)
		}
		return
	}
	if strings.TrimSpace(*v) == "" {
		f.add(field, domainerrors.MsgBlank)
	}
}

func (f fieldErrors) requirePresent(field string, present, required bool) {
	if !present && required {
		f.add(field, domainerrors.MsgRequired)
	}
}

// resolveRef loads a row referenced from the request body. A missing row
// becomes a field error; any other failure is returned.
func resolveRef[T any](f fieldErrors, field string, pk interface{}, load func() (T, error)) (T, error) {
	v, err := load()
	if err != nil {
		var zero T
		if errors.Is(err, domainerrors.ErrNotFound) {
			f.add(field, domainerrors.MsgDoesNotExist(pk))
			return zero, nil
		}
		return zero, err
	}
	return v, nil
}
