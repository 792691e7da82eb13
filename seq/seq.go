// Package seq generates the identifiers of archived log snapshots.
//
// An identifier joins the unix time of its creation with an ordinal number
// that is reset every second. Identifiers generated by one process are
// strictly increasing and keep their order when encoded.
package seq

import (
	"strconv"
	"sync"
	"time"
)

// EncodedLength defines the length of an encoded identifier.
const EncodedLength = 20

var seconds int64
var counter uint32
var mutex sync.Mutex

// Generate returns a new identifier. It overflows in 2106 or if called more
// than ca. 4 billion times a second.
func Generate() uint64 {
	// acquire mutex
	mutex.Lock()
	defer mutex.Unlock()

	// reset counter on a new second
	now := time.Now().Unix()
	if seconds != now {
		seconds = now
		counter = 0
	}

	// increment counter
	counter++

	return Join(time.Unix(seconds, 0), counter)
}

// Join constructs an identifier from a timestamp and ordinal number.
func Join(ts time.Time, n uint32) uint64 {
	return uint64(ts.Unix())<<32 | uint64(n)
}

// Split returns the timestamp and ordinal number of an identifier.
func Split(s uint64) (time.Time, uint32) {
	return time.Unix(int64(s>>32), 0), uint32(s & 0xFFFFFFFF)
}

// Encode returns the zero padded decimal form of the identifier.
func Encode(s uint64) []byte {
	// prepare buffer
	buf := make([]byte, EncodedLength)

	// format number
	num := strconv.AppendUint(make([]byte, 0, EncodedLength), s, 10)

	// pad with zeroes
	pad := EncodedLength - len(num)
	for i := 0; i < pad; i++ {
		buf[i] = '0'
	}
	copy(buf[pad:], num)

	return buf
}

// Decode parses an encoded identifier.
func Decode(key []byte) (uint64, error) {
	return strconv.ParseUint(string(key), 10, 64)
}
