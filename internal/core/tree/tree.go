// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tree manages the persisted family tree and its GEDCOM interchange.

# Layers

  - Repository (store.go): individuals and relationships in insertion order.
  - ExportCache (store.go): the rendered GEDCOM text of the whole tree.
  - Service (service.go): validation, cycle prevention, import and export.
  - Handler (http.go): the /api/v1 routes.

Insertion order matters: the generator numbers individuals @I1@, @I2@, ...
in the order the repository returns them, so exports are stable.
*/
package tree

import (
	"fmt"

	"github.com/taibuivan/stamtavla/internal/genealogy"
)

// # Import

// ImportMode selects how a GEDCOM import combines with the stored tree.
type ImportMode string

const (
	// ImportReplace discards the stored tree first.
	ImportReplace ImportMode = "replace"

	// ImportAppend adds the file's records next to the stored tree. Nobody is
	// matched or merged; re-importing a file duplicates its people.
	ImportAppend ImportMode = "append"
)

// ParseImportMode maps a query value to an [ImportMode]; empty means replace.
func ParseImportMode(value string) (ImportMode, error) {
	switch ImportMode(value) {
	case "", ImportReplace:
		return ImportReplace, nil
	case ImportAppend:
		return ImportAppend, nil
	}
	return "", fmt.Errorf("tree: unknown import mode %q", value)
}

// ImportSummary reports what an import stored.
type ImportSummary struct {
	Mode          ImportMode `json:"mode"`
	Individuals   int        `json:"individuals"`
	Relationships int        `json:"relationships"`

	// Skipped counts relationships dropped because they were self-referencing
	// or would have made someone their own ancestor.
	Skipped int `json:"skipped"`
}

// # Lineage

// Lineage is the answer of the ancestors and descendants endpoints.
type Lineage struct {
	Individual genealogy.Individual   `json:"individual"`
	Relatives  []genealogy.Individual `json:"relatives"`
}
