package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/domain"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/money"
)

// optionalInt is a PATCH field. Absent keeps the stored value; null or ""
// clears it to zero. Numbers may arrive quoted.
type optionalInt struct {
	Set   bool
	Value int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	o.Set, o.Value = true, 0
	raw, empty, err := patchText(b)
	if err != nil || empty {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidInput, raw)
	}
	o.Value = v
	return nil
}

func (o optionalInt) apply(dst *int) {
	if o.Set {
		*dst = o.Value
	}
}

// optionalCents is a PATCH amount in reais. Strings use the spreadsheet
// notation ("2.000,50"); bare JSON numbers are plain decimals.
type optionalCents struct {
	Set   bool
	Value int64
}

func (o *optionalCents) UnmarshalJSON(b []byte) error {
	o.Set, o.Value = true, 0
	raw, empty, err := patchText(b)
	if err != nil || empty {
		return err
	}
	if b[0] != '"' {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("%w: invalid amount %q", domain.ErrInvalidInput, raw)
		}
		o.Value = d.Shift(2).Round(0).IntPart()
		return nil
	}
	cents, err := money.ParseReaisToCents(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	o.Value = cents
	return nil
}

func (o optionalCents) apply(dst *int64) {
	if o.Set {
		*dst = o.Value
	}
}

// patchText unquotes a JSON scalar. empty reports null or a blank string.
func patchText(b []byte) (string, bool, error) {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return "", true, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		raw = strings.TrimSpace(s)
	}
	return raw, raw == "", nil
}
