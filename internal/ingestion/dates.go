package ingestion

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	fullDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	shortDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
)

// ParseDate reads dd/mm/yyyy, or dd/mm using baseYear. Impossible calendar
// dates (31/04) are rejected instead of rolling over.
func ParseDate(text string, baseYear int) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	if m := fullDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[3])
		return calendarDate(year, atoi(m[2]), atoi(m[1]))
	}
	if m := shortDateRe.FindStringSubmatch(s); m != nil {
		return calendarDate(baseYear, atoi(m[2]), atoi(m[1]))
	}
	return time.Time{}, false
}

func calendarDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var pickupFreeTextMarkers = []string{
	"sem retirada",
	"não atendeu",
	"nao atendeu",
	"entregou",
	"loja",
	"matriz",
}

// IsPickupFreeText reports whether a pickup cell describes a situation
// ("Sem retirada", "Entregou em loja", ...) rather than a date.
func IsPickupFreeText(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, marker := range pickupFreeTextMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
