// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/project). This root package
// holds sentinel errors, the ValidationError type, and the declarative field
// validator used by both the HTTP adapter and the CLI before a project reaches
// the store.
package domain
