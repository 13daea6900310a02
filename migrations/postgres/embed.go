// Package migrations embebe los archivos SQL en el binario.
package migrations

import "embed"

// FS contiene las migraciones postgres. Formato: {version}_{nombre}.sql.
//
//go:embed *.sql
var FS embed.FS
