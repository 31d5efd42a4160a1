package utils

import "time"

// DateLayout é o formato usado para datas de calendário na API (join_date,
// last_check_in quando é uma data).
const DateLayout = "2006-01-02"

// ParseDate valida e converte uma data no formato da API. String vazia é
// aceita e vira o zero value.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		parsed, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = parsed
	}

	return &date, nil
}

// Today devolve a data corrente no formato da API.
func Today() string {
	return time.Now().Format(DateLayout)
}
