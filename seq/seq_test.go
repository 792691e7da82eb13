package seq

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	id1 := Generate()
	assert.True(t, id1 > 0)

	id2 := Generate()
	assert.True(t, id2 > id1)

	ts, n := Split(id2)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Second)
	assert.True(t, n > 0)
}

func TestSplitAndJoin(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2019-05-02T12:05:42+03:00")
	assert.NoError(t, err)

	id := Join(now, 42)
	assert.Equal(t, uint64(6686353297697144874), id)

	ts, n := Split(id)
	assert.Equal(t, now.UTC(), ts.UTC())
	assert.Equal(t, uint32(42), n)

	ts, n = Split(math.MaxUint64)
	end, _ := time.Parse(time.RFC3339, "2106-02-07T06:28:15+00:00")
	assert.True(t, end.UTC().Equal(ts.UTC()))
	assert.Equal(t, uint32(math.MaxUint32), n)
}

func TestEncodeAndDecode(t *testing.T) {
	key := Encode(0)
	assert.Equal(t, []byte("00000000000000000000"), key)

	n, err := Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	key = Encode(1)
	assert.Equal(t, []byte("00000000000000000001"), key)

	n, err = Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	key = Encode(math.MaxUint64)
	assert.Equal(t, []byte("18446744073709551615"), key)

	n, err = Decode(key)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), n)

	_, err = Decode([]byte("foo"))
	assert.Error(t, err)
}

func TestEncodeOrder(t *testing.T) {
	a := Encode(Join(time.Unix(100, 0), 9))
	b := Encode(Join(time.Unix(100, 0), 10))
	c := Encode(Join(time.Unix(101, 0), 1))

	assert.True(t, string(a) < string(b))
	assert.True(t, string(b) < string(c))
}

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Generate()
	}
}

func BenchmarkEncode(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		Encode(uint64(i))
	}
}
