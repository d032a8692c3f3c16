package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		want     string
		encoding string
	}{
		{"utf-8", []byte("São Leopoldo"), "São Leopoldo", EncodingUTF8},
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("QNT;DATA")...), "QNT;DATA", EncodingUTF8},
		{"windows-1252", []byte("S\xe3o Leopoldo"), "São Leopoldo", EncodingWindows1252},
		{"windows-1252 upper", []byte("REGI\xc3O;OBSERVA\xc7\xd5ES"), "REGIÃO;OBSERVAÇÕES", EncodingWindows1252},
		{"empty", nil, "", EncodingUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc := DecodeText(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.encoding, enc)
		})
	}
}
