package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard fields used across the harness. Keeping the key names in one
// place makes the bootstrap logs greppable.

// Component tags the subsystem emitting the entry (seeder, backend, bootstrap).
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op tags the current operation (seed_products, register, reset...).
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err wraps an error field.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Count is a generic count field.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// Email identifies a test account.
func Email(v string) zap.Field {
	return zap.String("email", v)
}

// UserID identifies a user document.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// Slug identifies a product by its natural key.
func Slug(v string) zap.Field {
	return zap.String("slug", v)
}

// Collection names a mongo collection.
func Collection(v string) zap.Field {
	return zap.String("collection", v)
}

// Status is an HTTP status code.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Attempt numbers a retry attempt.
func Attempt(v int) zap.Field {
	return zap.Int("attempt", v)
}

// URL is a request target.
func URL(v string) zap.Field {
	return zap.String("url", v)
}

// Duration reports elapsed time.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// RunID correlates all entries of one bootstrap invocation.
func RunID(v string) zap.Field {
	return zap.String("run_id", v)
}

// String is a generic string field.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int is a generic int field.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}

// Bool is a generic bool field.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}

// Any is a generic field for arbitrary values.
func Any(key string, v any) zap.Field {
	return zap.Any(key, v)
}
