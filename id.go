package piranha

import "github.com/hfz-r/piranha.core/id"

// ID is the primary identifier type for all Piranha entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
