package reconciliation

import (
	"strings"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
)

// Placeholder the sheet uses for cases logged by the billing team. It is
// attributed to the importing user without a warning.
const billingPlaceholder = "COBRANÇA"

// attendantIndex resolves the free-text ATENDENTE column to a user ID: full
// name first, then first name. Both comparisons ignore case.
type attendantIndex struct {
	byFullName  map[string]string
	byFirstName map[string]string
	active      map[string]bool
}

func newAttendantIndex(users []domain.User) *attendantIndex {
	idx := &attendantIndex{
		byFullName:  make(map[string]string, len(users)),
		byFirstName: make(map[string]string, len(users)),
		active:      make(map[string]bool, len(users)),
	}
	for _, u := range users {
		idx.active[u.ID] = true
		full := nameKey(u.Name)
		if full == "" {
			continue
		}
		if _, ok := idx.byFullName[full]; !ok {
			idx.byFullName[full] = u.ID
		}
		first := strings.Fields(full)[0]
		if _, ok := idx.byFirstName[first]; !ok {
			idx.byFirstName[first] = u.ID
		}
	}
	return idx
}

func (a *attendantIndex) resolve(name string) (string, bool) {
	key := nameKey(name)
	if key == "" {
		return "", false
	}
	if id, ok := a.byFullName[key]; ok {
		return id, true
	}
	if id, ok := a.byFirstName[key]; ok {
		return id, true
	}
	return "", false
}

func (a *attendantIndex) isActive(userID string) bool {
	return a.active[userID]
}

func nameKey(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

// isSilentFallback reports whether falling back to the importing user needs
// no warning: empty names and the billing placeholder.
func isSilentFallback(name string) bool {
	key := nameKey(name)
	return key == "" || key == billingPlaceholder || key == "COBRANCA"
}
