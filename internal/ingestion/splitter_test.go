package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "A;B;C", []string{"A", "B", "C"}},
		{"quoted delimiter", `A;"B;C";D`, []string{"A", "B;C", "D"}},
		{"escaped quote", `A;"B""C";D`, []string{"A", `B"C`, "D"}},
		{"empty fields", ";;", []string{"", "", ""}},
		{"empty line", "", []string{""}},
		{"trailing carriage return", "A;B\r", []string{"A", "B"}},
		{"carriage return kept inside quotes", "\"A\rB\";C", []string{"A\rB", "C"}},
		{"unterminated quote", `A;"B;C`, []string{"A", "B;C"}},
		{"leading spaces kept", "A; B ;C", []string{"A", " B ", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRow(tt.line, Delimiter))
		})
	}
}

func TestSplitRow_FieldCount(t *testing.T) {
	line := "1;05/03;RETIDO;Ana;;;;;;;;;;;;;;;"
	assert.Len(t, SplitRow(line, Delimiter), 19)
}
