// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gedcom converts between GEDCOM 5.5.1 text and the genealogy model.

# Pipelines

  - [Parse]: text → individuals + relationships. Maximal tolerance: nothing
    in the text can make it fail.
  - [Generate]: individuals + relationships → text. Total over its input.
  - [Decode]: file bytes → text. The only step with a failure path.

Both Parse and Generate are pure. They keep all state in per-call values,
so concurrent calls on independent inputs are safe.

# Families

GEDCOM groups spouses and children into FAM records while the genealogy
model stores independent spouse and parent-child facts. Parse splits FAM
records into facts; Generate regroups facts into FAM records, merging
children that share the exact same parent set.

# Congregations

Parish membership has no GEDCOM tag. It travels as a NOTE starting with
"Församling: " under BIRT, DEAT, RESI and MARR.
*/
package gedcom
