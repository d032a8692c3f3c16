package ingestion

import "strings"

// Delimiter is the field separator of the manager's spreadsheet exports.
const Delimiter = ';'

// SplitRow splits one physical line into fields. Quoted fields may contain
// the delimiter and doubled quotes; stray carriage returns outside quotes are
// dropped. A line with N delimiters always yields N+1 fields. An unterminated
// quote swallows the rest of the line.
func SplitRow(line string, delim byte) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case delim:
			fields = append(fields, field.String())
			field.Reset()
		case '\r':
		default:
			field.WriteByte(c)
		}
	}

	return append(fields, field.String())
}
