package logging

import (
	"time"
)

// Generic field constructors.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Field helpers for the values the engine logs most often.

// Component names the subsystem emitting the entry (loader, sync, ...).
func Component(name string) Field {
	return String("component", name)
}

// Operation names the action being performed (fetch_forward, compress, ...).
func Operation(op string) Field {
	return String("operation", op)
}

// Timestamp carries a graph or window anchor time.
func Timestamp(ts int64) Field {
	return Int64("ts", ts)
}

// Edges carries a graph's edge count.
func Edges(n int) Field {
	return Int("edges", n)
}

// Nodes carries a graph's node count.
func Nodes(n int) Field {
	return Int("nodes", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
