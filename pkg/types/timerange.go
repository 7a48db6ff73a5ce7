package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTimeRange возвращается при некорректном формате временного окна
	ErrInvalidTimeRange = errors.New("invalid time range format")
)

// TimeRange временное окно в формате "HH:MM-HH:MM" (например, "10:00-14:00")
type TimeRange struct {
	Start TimeString
	End   TimeString
}

// ParseTimeRange разбирает строку "HH:MM-HH:MM" в TimeRange
// Обе границы валидируются; пустые и перевернутые окна отклоняются
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	start, err := NewTimeStringFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}

	end, err := NewTimeStringFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}

	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: %q: start must be before end", ErrInvalidTimeRange, s)
	}

	return TimeRange{Start: start, End: end}, nil
}

// Overlaps возвращает true, если окна действительно пересекаются
// Граничащие окна (конец одного равен началу другого) пересечением не считаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// String возвращает строковое представление окна
func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
