// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Countersign Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trade - enumeration of settlement payment media
package trade

import (
	"fmt"
	"strings"

	"github.com/countersign/registryd/fault"
)

// Type - trade type enumeration
type Type uint64

// possible trade type values
const (
	Nothing Type = iota // this must be the first value
	Native  Type = iota // settled in native currency
	Token   Type = iota // settled in a fungible token
)

// internal conversion
func toString(t Type) ([]byte, error) {
	switch t {
	case Nothing:
		return []byte{}, nil
	case Native:
		return []byte("native"), nil
	case Token:
		return []byte("token"), nil
	default:
		return []byte{}, fault.InvalidItem
	}
}

// FromString - convert a string to a trade type
func FromString(in string) (Type, error) {
	switch strings.ToLower(in) {
	case "":
		return Nothing, nil
	case "native":
		return Native, nil
	case "token", "fungible":
		return Token, nil
	default:
		return Nothing, fault.InvalidItem
	}
}

// String - convert a trade type to its tag string
func (t Type) String() string {
	s, err := toString(t)
	if nil != err {
		return "*unknown*"
	}
	return string(s)
}

// GoString - enum value and tag, for debugging
func (t Type) GoString() string {
	return fmt.Sprintf("<Trade#%d:%q>", uint64(t), t.String())
}

// MarshalText - convert a trade type to text
func (t Type) MarshalText() ([]byte, error) {
	return toString(t)
}

// UnmarshalText - convert text to a trade type
func (t *Type) UnmarshalText(s []byte) error {
	value, err := FromString(string(s))
	if nil != err {
		return err
	}
	*t = value
	return nil
}
