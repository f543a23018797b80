package csvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Ley de ida y vuelta del códec: splitFields(encodeFields(f)) == f para
// cualquier secuencia de campos, incluidos separadores, comillas, saltos de
// línea y cadenas vacías.
func TestCodec_IdaYVuelta(t *testing.T) {
	cases := []struct {
		name   string
		fields []string
	}{
		{"simple", []string{"1001", "Widget", "Hardware", "10", "2.5"}},
		{"campo con coma", []string{"1", "tornillo, galvanizado", "x"}},
		{"campo con comillas", []string{"1", `llave "inglesa"`, "x"}},
		{"campo con salto de línea", []string{"1", "línea uno\nlínea dos", "x"}},
		{"campos vacíos", []string{"", "", ""}},
		{"vacío al final", []string{"5001", "nota", ""}},
		{"solo comillas", []string{`""`, `"`}},
		{"coma y comilla juntas", []string{`a,"b`, "c"}},
		{"unicode", []string{"café", "señal", "ñandú"}},
		{"un solo campo vacío", []string{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := encodeFields(tc.fields)
			assert.Equal(t, tc.fields, splitFields(line),
				"decode(encode(f)) debe devolver los campos originales")
		})
	}
}

// Los valores escapados concretos: comillas solo cuando hacen falta, comillas
// internas duplicadas.
func TestCodec_Escapes(t *testing.T) {
	assert.Equal(t, "plain", encodeField("plain"))
	assert.Equal(t, `"a,b"`, encodeField("a,b"))
	assert.Equal(t, `"a""b"`, encodeField(`a"b`))
	assert.Equal(t, "\"a\nb\"", encodeField("a\nb"))
	assert.Equal(t, "", encodeField(""))
}

// Un separador dentro de comillas nunca corta el campo.
func TestCodec_SeparadorEntreComillas(t *testing.T) {
	fields := splitFields(`1001,"tornillo, galvanizado",Hardware`)
	assert.Equal(t, []string{"1001", "tornillo, galvanizado", "Hardware"}, fields)
}

// Dos comillas seguidas dentro de comillas decodifican a una comilla literal.
func TestCodec_ComillasDobladas(t *testing.T) {
	fields := splitFields(`1,"llave ""inglesa""",x`)
	assert.Equal(t, []string{"1", `llave "inglesa"`, "x"}, fields)
}
