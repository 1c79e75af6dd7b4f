// seed_catalog genera un script SQL para poblar el catálogo (productos, materias primas,
// proveedores y clientes) a partir de un CSV exportado por la caja anterior.
//
// Uso: go run ./cmd/seed_catalog [-latin1] [-out seed_catalog.sql] catalogo.csv
//
// Formato por línea (separador ';'): tipo;nombre;valor
//
//	producto;Pan de queso;2500      valor = precio
//	material;Harina;kg              valor = unidad
//	proveedor;Molinos SA;3001234567 valor = teléfono
//	cliente;Ana;3009876543          valor = teléfono
//
// Los ids se derivan del tipo y el nombre, así que regenerar y volver a aplicar el script no duplica filas.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportes de Excel en Windows)")
	outPath := flag.String("out", "seed_catalog.sql", "archivo SQL de salida")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-latin1] [-out archivo.sql] catalogo.csv")
		os.Exit(2)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	entries, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros\n", *outPath, len(entries))
}
