// Package logging centralizes slog logger construction and shared attribute
// helpers. Components obtain a child logger via NewComponentLogger so every
// record carries a stable "component" field.
package logging
