package index

import (
	"bytes"
	"encoding/binary"
	"time"
)

// key = biasedUnix(8) + 0x00 + postID
//
// The sign bit is flipped so byte order matches time order for instants
// before 1970 too. Seconds, not nanoseconds: posts may be dated past 2262.
func makeDatePostKey(t time.Time, postID string) []byte {
	buf := make([]byte, 8, 8+1+len(postID))
	binary.BigEndian.PutUint64(buf, uint64(t.Unix())^(1<<63))
	buf = append(buf, 0x00)
	buf = append(buf, postID...)
	return buf
}

func timeFromDatePostKey(k []byte) (time.Time, bool) {
	if len(k) < 8+1 {
		return time.Time{}, false
	}
	sec := int64(binary.BigEndian.Uint64(k[:8]) ^ (1 << 63))
	return time.Unix(sec, 0), true
}

func postIDFromDatePostKey(k []byte) string {
	if len(k) < 8+2 || k[8] != 0x00 {
		return ""
	}
	return string(bytes.Clone(k[9:]))
}
