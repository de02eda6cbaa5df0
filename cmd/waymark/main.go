// Package main provides the waymark CLI for ordered one-shot script
// migrations.
//
// The CLI supports:
//   - status: Show applied, pending, and baselined migrations
//   - up: Apply pending migrations in version order
//   - create: Scaffold a new migration file from a template
//   - baseline: Collapse applied history into a checkpoint
//   - doctor: Run health checks on a migrations directory
//
// Migrations are ordinary executable scripts named <version>-<name>.<ext>,
// where the version is a 5-character base36 code derived from the creation
// time. Applied ids are recorded in a .history ledger next to the scripts;
// a .baseline file marks everything at or below its version as done.
//
// Usage:
//
//	waymark [flags] <command>
package main

func main() {
	Execute()
}
