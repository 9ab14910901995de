// config.go - Konfigurations-Interface und KV-Metadaten
//
// Dieses Modul enthaelt:
// - Config: Interface fuer typisierten Zugriff auf Modell-Metadaten
// - KV: Map-basierte Config-Implementierung
// - Generische Getter (String, Uint, Float, Bool)
package fs

import (
	"iter"
	"log/slog"
	"maps"
)

// Config beschreibt typisierten Zugriff auf Modell-Metadaten.
// Werte sind strikt typisiert: numerische Eintraege muessen als uint32
// bzw. float32 abgelegt sein, sonst greift der Default.
type Config interface {
	Architecture() string

	String(key string, defaultValue ...string) string
	Uint(key string, defaultValue ...uint32) uint32
	Float(key string, defaultValue ...float32) float32
	Bool(key string, defaultValue ...bool) bool
}

// KV repraesentiert Key-Value Metadaten
type KV map[string]any

// Architecture gibt die Modell-Architektur zurueck
func (kv KV) Architecture() string {
	return kv.String("architecture", "unknown")
}

// Generische Getter

// String gibt einen String-Wert zurueck
func (kv KV) String(key string, defaultValue ...string) string {
	val, _ := keyValue(kv, key, append(defaultValue, "")...)
	return val
}

// Uint gibt einen uint32-Wert zurueck
func (kv KV) Uint(key string, defaultValue ...uint32) uint32 {
	val, _ := keyValue(kv, key, append(defaultValue, 0)...)
	return val
}

// Float gibt einen float32-Wert zurueck
func (kv KV) Float(key string, defaultValue ...float32) float32 {
	val, _ := keyValue(kv, key, append(defaultValue, 0)...)
	return val
}

// Bool gibt einen bool-Wert zurueck
func (kv KV) Bool(key string, defaultValue ...bool) bool {
	val, _ := keyValue(kv, key, append(defaultValue, false)...)
	return val
}

// Len gibt die Anzahl der KV-Paare zurueck
func (kv KV) Len() int {
	return len(kv)
}

// Keys gibt einen Iterator ueber alle Keys zurueck
func (kv KV) Keys() iter.Seq[string] {
	return maps.Keys(kv)
}

// Value gibt den rohen Wert fuer einen Key zurueck
func (kv KV) Value(key string) any {
	return kv[key]
}

// valueTypes umfasst die von keyValue unterstuetzten Typen
type valueTypes interface {
	~string | ~uint32 | ~float32 | ~bool
}

// keyValue liest einen typisierten Wert mit Default
func keyValue[T valueTypes](kv KV, key string, defaultValue ...T) (T, bool) {
	if val, ok := kv[key].(T); ok {
		return val, true
	}

	slog.Debug("key with type not found", "key", key, "default", defaultValue[0])
	return defaultValue[0], false
}
