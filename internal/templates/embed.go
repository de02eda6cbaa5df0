// Package templates provides embedded migration script templates for waymark.
package templates

import (
	_ "embed"
)

// Embedded script templates for the create command.
// Each one reads its execution context from the MIGRATE_* environment
// variables and carries a {{DESCRIPTION}} placeholder substituted at
// creation time.
//
// The scripts are embedded at compile time, ensuring the waymark binary
// can scaffold migrations without external template files.

// bashTemplate is the default template, a bash script with strict mode.
//
//go:embed templates/bash.sh
var bashTemplate string

// tsTemplate runs under npx tsx so projects need no global TypeScript
// toolchain.
//
//go:embed templates/typescript.ts
var tsTemplate string

// pythonTemplate targets python3 from PATH.
//
//go:embed templates/python.py
var pythonTemplate string

// nodeTemplate is plain CommonJS runnable on stock node.
//
//go:embed templates/node.js
var nodeTemplate string

// rubyTemplate targets the system ruby.
//
//go:embed templates/ruby.rb
var rubyTemplate string
