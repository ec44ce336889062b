// seed_catalog genera el script SQL de categorías del catálogo a partir del
// CSV exportado por el TPV antiguo (codificado en ISO-8859-1, separado por ';').
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_categories.sql
//
// Formato esperado (con cabecera):
//
//	nombre;margen;iva;orden
//	Bebidas;30;21;1
//	Panadería;25;10;2
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var allowedTaxRates = map[string]bool{"0": true, "4": true, "10": true, "21": true}

type categoryRow struct {
	name      string
	marginPct string
	taxPct    string
	sortOrder int
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El TPV antiguo exporta en Latin-1; lo pasamos a UTF-8 al vuelo.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	var rows []categoryRow
	for i, rec := range records[1:] { // saltamos la cabecera
		if len(rec) < 3 {
			fmt.Fprintf(os.Stderr, "fila %d: se esperan al menos 3 columnas\n", i+2)
			os.Exit(1)
		}
		name := strings.TrimSpace(rec[0])
		margin := strings.TrimSpace(rec[1])
		tax := strings.TrimSpace(rec[2])
		if name == "" {
			continue
		}
		if _, err := strconv.ParseFloat(margin, 64); err != nil {
			fmt.Fprintf(os.Stderr, "fila %d: margen inválido %q\n", i+2, margin)
			os.Exit(1)
		}
		if !allowedTaxRates[tax] {
			fmt.Fprintf(os.Stderr, "fila %d: tipo de IVA %q no permitido (0, 4, 10, 21)\n", i+2, tax)
			os.Exit(1)
		}
		order := i + 1
		if len(rec) >= 4 {
			if n, err := strconv.Atoi(strings.TrimSpace(rec[3])); err == nil {
				order = n
			}
		}
		rows = append(rows, categoryRow{name: name, marginPct: margin, taxPct: tax, sortOrder: order})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "CSV sin categorías válidas")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_categories.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Categorías del catálogo\n")
	out.WriteString("-- Generado desde el CSV del TPV antiguo (catalogo.csv)\n\n")
	out.WriteString("INSERT INTO categories (id, name, default_margin_pct, default_tax_pct, sort_order) VALUES\n")
	for i, row := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (gen_random_uuid(), '%s', %s, %s, %d)%s\n",
			escapeSQL(row.name), row.marginPct, row.taxPct, row.sortOrder, sep)
	}
	out.WriteString("ON CONFLICT (name) DO UPDATE SET\n")
	out.WriteString("  default_margin_pct = EXCLUDED.default_margin_pct,\n")
	out.WriteString("  default_tax_pct = EXCLUDED.default_tax_pct,\n")
	out.WriteString("  sort_order = EXCLUDED.sort_order;\n")

	fmt.Printf("Generado %s: %d categorías\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
