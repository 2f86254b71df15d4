// optional.go
//
// Tri-state JSON field for partial updates
//
// This file is part of kpa-formsdb.
// kpa-formsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// kpa-formsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with kpa-formsdb.
// If not, see <https://www.gnu.org/licenses/>.

package types

import (
	"encoding/json"
)

// Optional is a patch field that distinguishes "absent from the body" from
// "explicitly set to null" from "set to a value". A field absent from the
// request body leaves the stored value untouched; an explicit null clears it.
type Optional[T any] struct {
	// Set is true when the field appeared in the request body at all.
	Set bool
	// Valid is true when the field carried a non-null value.
	Valid bool
	// Value holds the decoded value when Valid.
	Value T
}

// UnmarshalJSON implements the json.Unmarshaler interface. It is only invoked
// when the field is present, so Set is always true here; absent fields keep
// the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a pointer, nil when the field was null or absent.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
