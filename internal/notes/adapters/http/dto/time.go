// Package dto описывает тела запросов и ответов HTTP API.
package dto

import "time"

// Форматы локального времени ISO без зоны.
const (
	TimeLayout       = "2006-01-02T15:04:05"
	renderTimeLayout = "2006-01-02T15:04:05.999999"
)

// FormatTime выводит t в локальной зоне сервера.
func FormatTime(t time.Time) string {
	return t.In(time.Local).Format(renderTimeLayout)
}

// ParseTime разбирает локальное время. Дробные секунды допускаются.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
