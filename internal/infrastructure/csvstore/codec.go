package csvstore

import "strings"

// Códec de línea CSV del formato de archivos del sistema. Se implementa a mano
// en lugar de usar encoding/csv porque el formato exige control exacto de
// bytes: una línea por registro en encode, sin traducción CRLF, y un
// encabezado que se escribe una sola vez y no se revalida en cargas
// posteriores.

const (
	fieldSep  = ','
	quoteChar = '"'
)

// encodeField escapa un campo: se envuelve en comillas si contiene el
// separador, una comilla o un salto de línea; toda comilla interna se duplica.
func encodeField(s string) string {
	needsQuotes := strings.ContainsAny(s, ",\"\n")
	t := strings.ReplaceAll(s, `"`, `""`)
	if needsQuotes {
		return `"` + t + `"`
	}
	return t
}

// encodeFields une los campos escapados con el separador, sin separador final.
func encodeFields(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = encodeField(f)
	}
	return strings.Join(parts, string(fieldSep))
}

// splitFields decodifica una línea en campos con un escaneo de dos estados
// (dentro/fuera de comillas). Dentro de comillas, dos comillas seguidas
// producen una comilla literal y una sola cierra el campo; un separador
// dentro de comillas nunca corta el campo. Ley de ida y vuelta:
// splitFields(encodeFields(f)) == f para cualquier secuencia de campos.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuotes {
			if c == quoteChar {
				if i+1 < len(line) && line[i+1] == quoteChar {
					cur.WriteByte(quoteChar)
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
			continue
		}
		switch c {
		case quoteChar:
			inQuotes = true
		case fieldSep:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
