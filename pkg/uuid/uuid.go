// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the record identifiers of the family tree.

Individuals, moves and relationships are keyed by UUIDv7 strings, whether
they were typed in by an editor or read from a GEDCOM file. Version 7 values
sort by creation time, so rows inserted by one import stay clustered in the
primary key index.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New returns a new UUIDv7 string. It panics only when the OS entropy source
// fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

