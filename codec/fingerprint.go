// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/katalvlaran/lvengine/engine"
	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of an engine's logical content.
type Hash [32]byte

// String renders the hash as lowercase hex.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// fingerprintKey separates engine fingerprints from any other BLAKE3 keyed
// hash: the ASCII domain name, zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'l', 'v', 'e', 'n', 'g', 'i', 'n', 'e', '.', 'c', 'o', 'd', 'e', 'c', '.',
	'f', 'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', 0, 0, 0, 0, 0, 0,
}

// fingerprintDoc is the hashed document: shape plus row-major cells.
type fingerprintDoc struct {
	Rows  int             `cbor:"rows"`
	Cols  int             `cbor:"cols"`
	Cells cbor.RawMessage `cbor:"cells"`
}

// Fingerprint returns the keyed BLAKE3 hash of e's logical content. Layout,
// reach and view nesting do not contribute: a transpose view and a
// materialized transpose share a fingerprint. Signed zeros hash alike, as
// they compare equal under engine.Equal.
//
// Errors: engine.ErrNilEngine, engine.ErrUnboundView.
// Complexity: O(rows*cols).
func Fingerprint[T engine.Element](e engine.Readable[T]) (Hash, error) {
	if err := engine.CheckEngine(e); err != nil {
		return Hash{}, fmt.Errorf("codec.Fingerprint: %w", err)
	}

	cells := make([]T, 0, e.Size())
	engine.Each(e, func(_, _ int, v T) bool {
		cells = append(cells, v)

		return true
	})
	raw, err := encodeCells(cells, true)
	if err != nil {
		return Hash{}, fmt.Errorf("codec.Fingerprint: %w", err)
	}
	doc, err := encMode.Marshal(fingerprintDoc{Rows: e.Rows(), Cols: e.Cols(), Cells: raw})
	if err != nil {
		return Hash{}, fmt.Errorf("codec.Fingerprint: %w", err)
	}

	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("codec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(doc)
	var h Hash
	copy(h[:], hasher.Sum(nil))

	return h, nil
}
