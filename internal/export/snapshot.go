package export

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/dshills/automath/internal/command"
)

// snapshotEncMode encodes snapshots deterministically.
var snapshotEncMode cbor.EncMode

// snapshotDecMode decodes snapshots.
var snapshotDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	snapshotEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	snapshotDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR decoder mode: %v", err))
	}
}

// Snapshot is a structural copy of a document.
type Snapshot struct {
	Version uint64          `cbor:"1,keyasint"`
	Blocks  []SnapshotBlock `cbor:"2,keyasint"`
}

// SnapshotBlock is a block of a snapshot.
type SnapshotBlock struct {
	Name   string           `cbor:"1,keyasint"`
	Attrs  map[string]any   `cbor:"2,keyasint,omitempty"`
	Inline []SnapshotInline `cbor:"3,keyasint,omitempty"`
}

// SnapshotInline is a text run or a math node. Exactly one is set.
type SnapshotInline struct {
	Text string        `cbor:"1,keyasint,omitempty"`
	Math *SnapshotMath `cbor:"2,keyasint,omitempty"`
}

// SnapshotMath is a math node.
type SnapshotMath struct {
	Equation string `cbor:"1,keyasint"`
	Display  bool   `cbor:"2,keyasint"`
	Type     string `cbor:"3,keyasint"`
}

// NewSnapshot builds a snapshot from blocks.
func NewSnapshot(version uint64, blocks []Block) Snapshot {
	s := Snapshot{Version: version, Blocks: make([]SnapshotBlock, 0, len(blocks))}
	for _, b := range blocks {
		sb := SnapshotBlock{Name: b.Element.Name}
		if len(b.Element.Attrs) > 0 {
			sb.Attrs = b.Element.Attrs
		}
		for _, in := range b.Inline {
			if in.Math == nil {
				sb.Inline = append(sb.Inline, SnapshotInline{Text: in.Text})
				continue
			}
			sb.Inline = append(sb.Inline, SnapshotInline{Math: &SnapshotMath{
				Equation: in.Math.StringAttr(command.AttrEquation),
				Display:  in.Math.BoolAttr(command.AttrDisplay),
				Type:     in.Math.StringAttr(command.AttrType),
			}})
		}
		s.Blocks = append(s.Blocks, sb)
	}
	return s
}

// EncodeSnapshot encodes s to CBOR.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := snapshotEncMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot decodes a CBOR snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := snapshotDecMode.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
