package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidReference is matched by every malformed identifier error.
var ErrInvalidReference = errors.New("invalid reference")

// InvalidReferenceError reports an identifier that is not a well-formed
// reference token. It is a client input error, never a not-found.
type InvalidReferenceError struct {
	Field string
	Value string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference %q", e.Field, e.Value)
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// ParseReference is the single parse/validate step for every identifier the
// API receives: a 24 character hexadecimal document id.
func ParseReference(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, &InvalidReferenceError{Field: field, Value: raw}
	}
	return id, nil
}

// ParseOptionalReference parses raw when it is non-empty and returns nil otherwise.
func ParseOptionalReference(field, raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := ParseReference(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
