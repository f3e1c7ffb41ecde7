package outline

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// PointID identifies a point for the lifetime of a glyph. It is the only thing
// used to compare and look up points; positions change, IDs don't. The two
// copies of a joint shared by adjacent segments carry the same ID.
type PointID uuid.UUID

// NilID is the zero PointID. No supply hands it out.
var NilID PointID

func (id PointID) String() string {
	return uuid.UUID(id).String()
}

// IDSupply hands out unique point identifiers.
type IDSupply interface {
	NextID() PointID
}

type randomSupply struct{}

func (randomSupply) NextID() PointID {
	return PointID(uuid.New())
}

// SequentialSupply derives identifiers from a namespace and a counter, which
// makes imports reproducible. It is not safe for concurrent use.
type SequentialSupply struct {
	namespace uuid.UUID
	n         uint64
}

// NewSequentialSupply returns a supply whose IDs depend only on namespace and
// on how many IDs were handed out before.
func NewSequentialSupply(namespace string) *SequentialSupply {
	return &SequentialSupply{namespace: uuid.NewSHA1(uuid.NameSpaceOID, []byte(namespace))}
}

func (s *SequentialSupply) NextID() PointID {
	s.n++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], s.n)
	return PointID(uuid.NewSHA1(s.namespace, buf[:]))
}

var ids IDSupply = randomSupply{}

// SetIDSupply replaces the process-wide identifier supply. Passing nil
// restores random UUIDs. Like the rest of the package, it must be called from
// the thread that edits glyphs.
func SetIDSupply(s IDSupply) {
	if s == nil {
		s = randomSupply{}
	}
	ids = s
}

// NewPointID returns a fresh identifier from the process-wide supply.
func NewPointID() PointID {
	return ids.NextID()
}
