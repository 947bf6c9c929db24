// Package persistence is the durable key/value boundary of the domain store.
//
// Every Gateway operation reports success as a boolean and never returns an
// error: storage trouble is logged and the in-memory session carries on.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Backend is a string-keyed store with getItem/setItem/removeItem semantics.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
	// SetMany writes all values or none of them.
	SetMany(values map[string]string) error
}

// Error describes a storage failure. It is only ever logged.
type Error struct {
	Op  string
	Key string
	Err error
}

func (err *Error) Error() string {
	if err.Key == "" {
		return fmt.Sprintf("persistence %s: %v", err.Op, err.Err)
	}
	return fmt.Sprintf("persistence %s %q: %v", err.Op, err.Key, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

type Gateway struct {
	backend Backend
	logger  hclog.Logger
}

func NewGateway(backend Backend, logger hclog.Logger) *Gateway {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Gateway{
		backend: backend,
		logger:  logger.Named("persistence"),
	}
}

func (gateway *Gateway) Save(key string, value any) bool {
	encoded, err := json.Marshal(value)
	if err != nil {
		gateway.report(&Error{Op: "encode", Key: key, Err: err})
		return false
	}
	if err := gateway.backend.Set(key, string(encoded)); err != nil {
		gateway.report(&Error{Op: "save", Key: key, Err: err})
		return false
	}
	return true
}

// Load returns the stored JSON for key. A missing key, a read failure and a
// value that is not valid JSON all read as absent.
func (gateway *Gateway) Load(key string) (json.RawMessage, bool) {
	value, found, err := gateway.backend.Get(key)
	if err != nil {
		gateway.report(&Error{Op: "load", Key: key, Err: err})
		return nil, false
	}
	if !found {
		return nil, false
	}
	if !json.Valid([]byte(value)) {
		gateway.report(&Error{Op: "load", Key: key, Err: errCorruptValue})
		return nil, false
	}
	return json.RawMessage(value), true
}

// LoadInto decodes the stored value into target. It reports false, leaving
// target in an unspecified state, when the key is absent or undecodable.
func (gateway *Gateway) LoadInto(key string, target any) bool {
	raw, ok := gateway.Load(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		gateway.report(&Error{Op: "decode", Key: key, Err: err})
		return false
	}
	return true
}

func (gateway *Gateway) Remove(key string) bool {
	if err := gateway.backend.Delete(key); err != nil {
		gateway.report(&Error{Op: "remove", Key: key, Err: err})
		return false
	}
	return true
}

// ClearAll removes every key in keys, continuing past individual failures.
func (gateway *Gateway) ClearAll(keys []string) bool {
	cleared := true
	for _, key := range keys {
		if !gateway.Remove(key) {
			cleared = false
		}
	}
	return cleared
}

// SaveAll encodes every value first and writes them as one batch, so either
// all keys are replaced or none are.
func (gateway *Gateway) SaveAll(values map[string]any) bool {
	encoded := make(map[string]string, len(values))
	for key, value := range values {
		payload, err := json.Marshal(value)
		if err != nil {
			gateway.report(&Error{Op: "encode", Key: key, Err: err})
			return false
		}
		encoded[key] = string(payload)
	}
	if err := gateway.backend.SetMany(encoded); err != nil {
		gateway.report(&Error{Op: "save batch", Err: err})
		return false
	}
	return true
}

func (gateway *Gateway) report(err *Error) {
	gateway.logger.Warn("storage operation failed", "op", err.Op, "key", err.Key, "error", err.Err)
}
