package csvstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// recordKind describe cómo una colección de registros se proyecta a líneas
// CSV: el encabezado fijo, la proyección a campos y el parseo tipado inverso.
type recordKind[T any] struct {
	header string
	encode func(T) []string
	decode func(fields []string, file string, line int) (T, error)
}

// table persiste una colección de registros de un mismo tipo en un archivo
// CSV. La primera línea es siempre el encabezado del tipo.
type table[T any] struct {
	fs   afero.Fs
	path string
	kind recordKind[T]
}

// init crea el directorio si falta y el archivo con solo el encabezado si no
// existe. Devuelve true cuando el archivo fue creado en esta llamada, para
// que el caller pueda sembrar registros iniciales.
func (t *table[T]) init() (created bool, err error) {
	dir := filepath.Dir(t.path)
	if err := t.fs.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("crear directorio %q: %w", dir, err)
	}
	exists, err := afero.Exists(t.fs, t.path)
	if err != nil {
		return false, fmt.Errorf("comprobar %q: %w", t.path, err)
	}
	if exists {
		return false, nil
	}
	if err := afero.WriteFile(t.fs, t.path, []byte(t.kind.header+"\n"), 0o644); err != nil {
		return false, fmt.Errorf("crear %q: %w", t.path, err)
	}
	return true, nil
}

// load lee el archivo completo: salta el encabezado y las líneas en blanco y
// decodifica todas las demás. Una sola línea malformada aborta la carga
// entera; nunca hay carga parcial.
func (t *table[T]) load() ([]T, error) {
	f, err := t.fs.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("abrir %q: %w", t.path, err)
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if n == 1 {
			continue // encabezado: se escribió al crear y no se revalida
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := t.kind.decode(splitFields(line), t.path, n)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("leer %q: %w", t.path, err)
	}
	return records, nil
}

// saveAll reescribe la colección completa: encabezado más una línea por
// registro, en el orden dado. Escribe a un temporal y renombra encima, de
// modo que un corte a mitad de escritura deja el archivo viejo o el nuevo,
// nunca uno cortado.
func (t *table[T]) saveAll(records []T) error {
	var b strings.Builder
	b.WriteString(t.kind.header)
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString(encodeFields(t.kind.encode(rec)))
		b.WriteByte('\n')
	}
	tmp := t.path + ".tmp"
	if err := afero.WriteFile(t.fs, tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("escribir %q: %w", tmp, err)
	}
	if err := t.fs.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("renombrar %q sobre %q: %w", tmp, t.path, err)
	}
	return nil
}

// append agrega una sola línea al final del archivo. Solo lo usa el log de
// movimientos: las colecciones de reescritura completa jamás pasan por aquí.
func (t *table[T]) append(rec T) error {
	f, err := t.fs.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir %q para append: %w", t.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(encodeFields(t.kind.encode(rec)) + "\n"); err != nil {
		return fmt.Errorf("append en %q: %w", t.path, err)
	}
	return nil
}
