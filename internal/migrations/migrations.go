// Package migrations embeds the goose SQL migrations for the account and
// OTP tables.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
