// config.go - Haupt-Konfigurationsfunktionen fuer Strata
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (STRATA_DEBUG)
// - Threads: Gibt Thread-Anzahl fuer CPU-Backends zurueck (STRATA_THREADS)
// - Backend: Gibt den Standard-Backend-Namen zurueck (STRATA_BACKEND)
// - Var: Liest Environment-Variablen mit Quote/Whitespace-Bereinigung
//
// Weitere Konfigurationen sind ausgelagert:
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via STRATA_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("STRATA_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Threads gibt die Anzahl der Rechen-Threads fuer CPU-Backends zurueck
// Konfigurierbar via STRATA_THREADS
// 0 = automatisch (GOMAXPROCS des Prozesses)
func Threads() int {
	if s := Var("STRATA_THREADS"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 32); err != nil {
			slog.Warn("invalid environment variable, using default", "key", "STRATA_THREADS", "value", s, "default", 0)
		} else {
			return int(n)
		}
	}

	return 0
}

// Backend gibt den Namen des Standard-Backends zurueck
// Konfigurierbar via STRATA_BACKEND
// Default: "cpu"
func Backend() string {
	if s := Var("STRATA_BACKEND"); s != "" {
		return s
	}

	return "cpu"
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
