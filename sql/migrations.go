// Package migrations embute os arquivos goose para que cmd/migrate rode sem depender do diretório de trabalho.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
