package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a request to the
// platform, the model or the HTTP API
type Opt func(*opts) error

// Options is a read-only view of applied options
type Options interface {
	Has(key string) bool
	GetString(key string) string
	GetFloat64(key string) float64
	GetUint(key string) uint
	Query(keys ...string) url.Values
}

// set of options
type opts struct {
	url.Values
}

var _ Options = (*opts)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Model options
	ToolChoiceKey  = "tool_choice"
	TemperatureKey = "temperature"
	MaxTokensKey   = "max_tokens"

	// Platform options
	IntegrationKey = "integration"
	RedirectURIKey = "redirect_uri"

	// HTTP API query parameters
	EntityKey = "entityId"
	AppKey    = "app"
	WaitKey   = "wait"
	TagKey    = "tag"
	ActionKey = "action"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values)}
	for _, opt := range o {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the values for the given keys, omitting keys which are not set
func (o *opts) Query(keys ...string) url.Values {
	query := make(url.Values)
	for _, key := range keys {
		if value, ok := o.Values[key]; ok {
			query[key] = value
		}
	}
	return query
}

// GetString returns the trimmed value for key, or empty string if not set
func (o *opts) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *opts) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *opts) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Has returns true if the key exists
func (o *opts) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *opts) error {
		return err
	}
}

// NoOp returns an option which does nothing
func NoOp() Opt {
	return func(o *opts) error {
		return nil
	}
}

// SetString replaces any values for key
func SetString(key, value string) Opt {
	return func(o *opts) error {
		o.Values.Set(key, value)
		return nil
	}
}

// AddString appends values for key, skipping empty values
func AddString(key string, value ...string) Opt {
	return func(o *opts) error {
		for _, v := range value {
			if v = strings.TrimSpace(v); v != "" {
				o.Values.Add(key, v)
			}
		}
		return nil
	}
}

// SetUint replaces any values for key
func SetUint(key string, value uint) Opt {
	return func(o *opts) error {
		o.Values.Set(key, fmt.Sprint(value))
		return nil
	}
}

// SetFloat64 replaces any values for key
func SetFloat64(key string, value float64) Opt {
	return func(o *opts) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}
