// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity operations.
var (
	// ErrUnknownProperty indicates access to a property the entity's schema does not declare.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrUnsupportedOperation indicates an operation entities never support, such as deleting a property.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrUnknownForm indicates a form id the entity does not carry.
	ErrUnknownForm = errors.New("unknown form")

	// ErrDetached indicates an entity without a client tried to talk to the API.
	ErrDetached = errors.New("entity is not attached to a client")

	// ErrNotAList indicates Add on a property whose value is not a list of a compatible type.
	ErrNotAList = errors.New("property is not a list")

	// ErrPropertyType indicates a typed accessor found a value of another type.
	ErrPropertyType = errors.New("unexpected property type")

	// ErrNoContent indicates the API answered without an entity where one was required.
	ErrNoContent = errors.New("response carried no entity")
)

// UnknownPropertyError reports access to an undeclared property.
// It is a programming error rather than a data condition.
type UnknownPropertyError struct {
	Kind     string
	Property string
}

// Error implements the error interface.
func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("property %q is not present in %s entity", e.Property, e.Kind)
}

// Is makes errors.Is(err, ErrUnknownProperty) match.
func (*UnknownPropertyError) Is(target error) bool {
	return target == ErrUnknownProperty
}

// UnsupportedOperationError reports an operation entities refuse.
type UnsupportedOperationError struct {
	Op       string
	Property string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s of property %q is not supported", e.Op, e.Property)
}

// Is makes errors.Is(err, ErrUnsupportedOperation) match.
func (*UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}
