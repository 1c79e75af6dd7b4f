package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type kind string

const (
	kindProduct  kind = "producto"
	kindMaterial kind = "material"
	kindSupplier kind = "proveedor"
	kindCustomer kind = "cliente"
)

// orden de escritura en el script
var kindOrder = map[kind]int{kindProduct: 0, kindMaterial: 1, kindSupplier: 2, kindCustomer: 3}

type entry struct {
	kind  kind
	id    uuid.UUID
	name  string
	value string
	price decimal.Decimal
}

// parseCatalog lee líneas tipo;nombre;valor. Ignora líneas vacías y las que empiezan con '#'.
// Nombres repetidos del mismo tipo (sin distinguir mayúsculas) se quedan con la primera aparición.
func parseCatalog(r io.Reader) ([]entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var out []entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos tipo;nombre", line)
		}
		k := kind(strings.ToLower(strings.TrimSpace(rec[0])))
		if _, ok := kindOrder[k]; !ok {
			return nil, fmt.Errorf("línea %d: tipo %q desconocido", line, rec[0])
		}
		name := strings.TrimSpace(rec[1])
		if name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		value := ""
		if len(rec) > 2 {
			value = strings.TrimSpace(rec[2])
		}

		e := entry{kind: k, name: name, value: value, id: catalogID(k, name)}
		switch k {
		case kindProduct:
			e.price = decimal.Zero
			if value != "" {
				p, err := decimal.NewFromString(strings.ReplaceAll(value, ",", "."))
				if err != nil || p.IsNegative() {
					return nil, fmt.Errorf("línea %d: precio inválido %q", line, value)
				}
				e.price = p
			}
		case kindMaterial:
			if value == "" {
				return nil, fmt.Errorf("línea %d: el material %q requiere unidad", line, name)
			}
		}

		key := string(k) + ":" + strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return kindOrder[out[i].kind] < kindOrder[out[j].kind] })
	return out, nil
}

// catalogID id estable por tipo y nombre.
func catalogID(k kind, name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(k)+":"+strings.ToLower(name)))
}

func writeSQL(w io.Writer, entries []entry) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial (generado por cmd/seed_catalog)\n")
	b.WriteString("BEGIN;\n\n")
	for _, e := range entries {
		name := escapeSQL(e.name)
		switch e.kind {
		case kindProduct:
			fmt.Fprintf(&b, "INSERT INTO products (id, name, price) VALUES ('%s', '%s', %s) ON CONFLICT (id) DO NOTHING;\n",
				e.id, name, e.price.StringFixed(2))
		case kindMaterial:
			fmt.Fprintf(&b, "INSERT INTO raw_materials (id, name, unit) VALUES ('%s', '%s', '%s') ON CONFLICT DO NOTHING;\n",
				e.id, name, escapeSQL(e.value))
		case kindSupplier:
			fmt.Fprintf(&b, "INSERT INTO suppliers (id, name, phone) VALUES ('%s', '%s', '%s') ON CONFLICT DO NOTHING;\n",
				e.id, name, escapeSQL(e.value))
		case kindCustomer:
			fmt.Fprintf(&b, "INSERT INTO customers (id, name, phone) VALUES ('%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
				e.id, name, escapeSQL(e.value))
		}
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
