package badger

import (
	"encoding/binary"

	"github.com/poiesic/tenderfeed/core"
)

// Key prefixes for different data types
const (
	tenderPrefix           = "tnd:"
	tenderIDSeq            = "seq:tnd"
	profilePrefix          = "prf:"
	profileUserPrefix      = "prfu:"
	profileIDSeq           = "seq:prf"
	interactionPrefix      = "int:"
	interactionTenderIndex = "intt:"
)

// typeTerminator ends the variable-length interaction type inside index keys,
// so that one type name never prefix-matches another.
const typeTerminator = 0x00

// makeIDKey generates prefix + big-endian ID so that keys sort by ID.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// idFromKey extracts the trailing 8-byte ID of a key built by makeIDKey.
func idFromKey(prefix string, key []byte) (core.ID, bool) {
	if len(key) != len(prefix)+8 {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(prefix):])), true
}

func makeTenderKey(id core.ID) []byte {
	return makeIDKey(tenderPrefix, id)
}

func makeProfileKey(id core.ID) []byte {
	return makeIDKey(profilePrefix, id)
}

// makeProfileUserKey indexes the owning user of a profile.
func makeProfileUserKey(userID core.ID) []byte {
	return makeIDKey(profileUserPrefix, userID)
}

// makeUserInteractionsPrefix generates the prefix shared by all interactions of a user.
// Format: prefix:userID
func makeUserInteractionsPrefix(userID core.ID) []byte {
	return makeIDKey(interactionPrefix, userID)
}

// makeInteractionKey generates the primary key of an interaction.
// Format: prefix:userID:tenderID:type
func makeInteractionKey(userID, tenderID core.ID, interactionType core.InteractionType) []byte {
	prefix := makeUserInteractionsPrefix(userID)
	buf := make([]byte, len(prefix)+8+len(interactionType))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(tenderID))
	offset += 8
	copy(buf[offset:], interactionType)
	return buf
}

// parseInteractionKey splits a primary interaction key into tender ID and type.
func parseInteractionKey(key []byte) (core.ID, core.InteractionType, bool) {
	head := len(interactionPrefix) + 8
	if len(key) < head+8 {
		return 0, "", false
	}
	tenderID := core.ID(binary.BigEndian.Uint64(key[head : head+8]))
	return tenderID, core.InteractionType(key[head+8:]), true
}

// makeTenderTypePrefix generates the index prefix for one interaction type on a tender.
// Format: prefix:tenderID:type\x00
func makeTenderTypePrefix(tenderID core.ID, interactionType core.InteractionType) []byte {
	prefix := makeIDKey(interactionTenderIndex, tenderID)
	buf := make([]byte, len(prefix)+len(interactionType)+1)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], interactionType)
	buf[offset] = typeTerminator
	return buf
}

// makeTenderIndexKey generates the tender-side index key of an interaction.
// Format: prefix:tenderID:type\x00userID
func makeTenderIndexKey(tenderID core.ID, interactionType core.InteractionType, userID core.ID) []byte {
	prefix := makeTenderTypePrefix(tenderID, interactionType)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(userID))
	return buf
}
