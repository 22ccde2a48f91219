// Package migrations embebe los archivos SQL de esquema para ejecutarlos
// con golang-migrate al arrancar la aplicación.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
