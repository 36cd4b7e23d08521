package cerr

import (
	"github.com/cockroachdb/errors"
)

type F = map[string]interface{}

var _ error = ContextualError{}
var _ interface{ Unwrap() error } = ContextualError{}

type ContextualError struct {
	// left public so the logger can pull the fields out
	Context Context
	err     error
}

func (c ContextualError) Error() string {
	return c.err.Error()
}

func (c ContextualError) Unwrap() error {
	return c.err
}

type Context struct {
	ContextFields F
	cause         error
	marks         []error
}

func Field(key string, value interface{}) Context {
	return Context{}.Field(key, value)
}

func Fields(fields F) Context {
	return Context{}.Fields(fields)
}

func Wrap(err error) Context {
	return Context{}.Wrap(err)
}

func Mark(kind error) Context {
	return Context{}.Mark(kind)
}

func Error(message string) error {
	return Context{}.error(message)
}

func (c Context) Field(key string, value interface{}) Context {
	return c.Fields(F{key: value})
}

func (c Context) Fields(fields F) Context {
	merged := F{}
	for k, v := range c.ContextFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	c.ContextFields = merged
	return c
}

// Wrap keeps the fields of a wrapped ContextualError, fields set on the
// outer context win on conflicts.
func (c Context) Wrap(err error) Context {
	var inner ContextualError
	if errors.As(err, &inner) {
		outerFields := c.ContextFields
		c.ContextFields = nil
		c = c.Fields(inner.Context.ContextFields).Fields(outerFields)
	}

	c.cause = err
	return c
}

func (c Context) Mark(kind error) Context {
	c.marks = append(append([]error{}, c.marks...), kind)
	return c
}

func (c Context) Error(message string) error {
	return c.error(message)
}

func (c Context) error(message string) error {
	var err error
	if c.cause == nil {
		err = errors.NewWithDepth(2, message)
	} else {
		err = errors.WrapWithDepth(2, c.cause, message)
	}

	for _, kind := range c.marks {
		err = errors.Mark(err, kind)
	}

	return ContextualError{
		Context: c,
		err:     err,
	}
}
