package utils

import "time"

// LoadLocation devolve o fuso informado, ou UTC quando vazio ou desconhecido
func LoadLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}

	return location
}

// DateIn formata o instante como YYYY-MM-DD no fuso informado
func DateIn(instant time.Time, location *time.Location) string {
	return instant.In(location).Format(time.DateOnly)
}
