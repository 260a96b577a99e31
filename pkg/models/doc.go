// Package models provides shared data models and types for footing.
//
// This package contains the configuration section types and the report
// language codes used across the config, report, ui and cli packages.
//
// # Report Languages
//
// Reports can be produced in English (default) or Spanish:
//
//	langs := models.SupportedLanguages() // ["en", "es"]
//	name := models.GetLanguageName("es") // "Spanish (Español)"
//
// # Configuration Types
//
// The package provides structured configuration types:
//   - [FormDefaults]: initial values of the interactive form fields
//   - [EngineSettings]: sizing loop tuning (iteration cap, scale step)
//   - [ReportSettings]: report language and document metadata
package models
