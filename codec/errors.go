// SPDX-License-Identifier: MIT

package codec

import "errors"

// ErrMalformed is returned when a document decodes but does not describe a
// storage engine (unknown layout or extents, wrong field shapes, a reach
// above MaxCells).
// Shape inconsistencies are reported as engine.ErrShapeMismatch instead.
var ErrMalformed = errors.New("codec: malformed document")
