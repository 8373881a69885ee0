// seed_permissions genera el script SQL con el catálogo de acciones y los permisos implícitos
// de cada rol, para que herramientas de reporte y el panel de administración lean la misma
// tabla de roles que aplica el resolvedor.
//
// Uso: go run ./cmd/seed_permissions [ruta de salida]
// Por defecto escribe internal/infrastructure/postgres/migrations/002_role_catalogue.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/pkg/normalize"
)

var globalRoles = []string{permission.GlobalRoleSuperAdmin, permission.GlobalRoleAdmin, permission.GlobalRoleUser}

var storeRoles = []permission.StoreRole{
	permission.StoreRoleOwner, permission.StoreRoleAdmin, permission.StoreRoleManager, permission.StoreRoleStaff,
}

func main() {
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_role_catalogue.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	n, err := render(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d acciones, %d filas rol→acción\n", outPath, len(permission.Catalogue()), n)
}

// render escribe el script y devuelve cuántas filas rol→acción generó.
func render(w io.Writer) (int, error) {
	var b strings.Builder
	b.WriteString("-- Catálogo de acciones y permisos implícitos por rol.\n")
	b.WriteString("-- Generado por cmd/seed_permissions; no editar a mano.\n\n")

	b.WriteString(`CREATE TABLE IF NOT EXISTS permission_actions (
    code         TEXT PRIMARY KEY,
    label        TEXT NOT NULL,
    store_scoped BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS role_permissions (
    scope  TEXT NOT NULL CHECK (scope IN ('global', 'store')),
    role   TEXT NOT NULL,
    action TEXT NOT NULL,
    PRIMARY KEY (scope, role, action)
);

`)

	storeScoped := make(map[string]bool)
	for _, a := range permission.StoreScopedActions() {
		storeScoped[a] = true
	}

	b.WriteString("-- 1. Acciones\n")
	b.WriteString("INSERT INTO permission_actions (code, label, store_scoped) VALUES\n")
	actions := permission.Catalogue()
	for i, a := range actions {
		fmt.Fprintf(&b, "  ('%s', '%s', %t)", escapeSQL(a), escapeSQL(normalize.Title(a)), storeScoped[a])
		b.WriteString(sep(i, len(actions)))
	}
	b.WriteString("ON CONFLICT (code) DO UPDATE SET label = EXCLUDED.label, store_scoped = EXCLUDED.store_scoped;\n\n")

	var rows []string
	for _, r := range globalRoles {
		for _, a := range permission.GlobalRoleActions(r) {
			rows = append(rows, fmt.Sprintf("  ('global', '%s', '%s')", escapeSQL(r), escapeSQL(a)))
		}
	}
	for _, r := range storeRoles {
		for _, a := range permission.StoreRoleActions(r) {
			rows = append(rows, fmt.Sprintf("  ('store', '%s', '%s')", escapeSQL(string(r)), escapeSQL(a)))
		}
	}

	// La tabla refleja exactamente el binario que la generó.
	b.WriteString("-- 2. Permisos implícitos por rol\n")
	b.WriteString("DELETE FROM role_permissions;\n")
	b.WriteString("INSERT INTO role_permissions (scope, role, action) VALUES\n")
	for i, r := range rows {
		b.WriteString(r)
		b.WriteString(sep(i, len(rows)))
	}
	b.WriteString("ON CONFLICT DO NOTHING;\n")

	_, err := io.WriteString(w, b.String())
	return len(rows), err
}

func sep(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
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
