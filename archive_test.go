package qlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchive(t *testing.T) {
	archive := openArchive()
	defer closeArchive(archive)

	list, err := archive.List()
	assert.NoError(t, err)
	assert.Empty(t, list)

	// store

	log := makeLog(3, 50,
		single(GateHadamard, 0),
		controlled(GateCx, 0, 1),
		op{qubits: []int{2, 1, 0}, app: ApplicationBlock, gate: GateQft},
	)

	id1, err := archive.Store(log)
	assert.NoError(t, err)
	assert.NotZero(t, id1)

	log.Clear()

	id2, err := archive.Store(log)
	assert.NoError(t, err)
	assert.True(t, id2 > id1)

	list, err = archive.List()
	assert.NoError(t, err)
	assert.Equal(t, []uint64{id1, id2}, list)

	// load

	loaded, err := archive.Load(id1)
	assert.NoError(t, err)
	assert.Equal(t, 3, loaded.Qubits())
	assert.Equal(t, 50, loaded.Capacity())
	assert.Equal(t, []op{
		single(GateHadamard, 0),
		controlled(GateCx, 0, 1),
		{qubits: []int{2, 1, 0}, app: ApplicationBlock, gate: GateQft},
	}, listOps(loaded))

	loaded, err = archive.Load(id2)
	assert.NoError(t, err)
	assert.Equal(t, 0, loaded.Size())
	assert.Equal(t, Active, loaded.State())

	// missing

	loaded, err = archive.Load(1)
	assert.Equal(t, ErrNotFound, err)
	assert.Nil(t, loaded)

	// delete

	err = archive.Delete(id1)
	assert.NoError(t, err)

	_, err = archive.Load(id1)
	assert.Equal(t, ErrNotFound, err)

	list, err = archive.List()
	assert.NoError(t, err)
	assert.Equal(t, []uint64{id2}, list)

	// destroyed

	log.Destroy()

	_, err = archive.Store(log)
	assert.Equal(t, ErrInvalidHandle, err)
}

func TestArchiveTrim(t *testing.T) {
	archive := openArchive()
	defer closeArchive(archive)

	var ids []uint64
	for i := 0; i < 5; i++ {
		log := makeLog(1, 5, single(GatePauliX, 0))
		id, err := archive.Store(log)
		assert.NoError(t, err)
		ids = append(ids, id)
	}

	n, err := archive.Trim(10)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = archive.Trim(2)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	list, err := archive.List()
	assert.NoError(t, err)
	assert.Equal(t, ids[3:], list)

	n, err = archive.Trim(-1)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err = archive.List()
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestArchivePrefix(t *testing.T) {
	archive := openArchive()
	defer closeArchive(archive)

	assert.Equal(t, "qlog#", string(archive.lower))
	assert.Equal(t, "qlog$", string(archive.upper))

	key := archive.makeKey(42)
	assert.Equal(t, "qlog#00000000000000000042", string(key))
}

func TestOpenArchiveMissingDirectory(t *testing.T) {
	assert.PanicsWithValue(t, "qlog: missing directory", func() {
		_, _ = OpenArchive(ArchiveConfig{})
	})
}

func BenchmarkArchiveStore(b *testing.B) {
	archive := openArchive()
	defer closeArchive(archive)

	log := makeLog(2, 100)
	for i := 0; i < 100; i++ {
		err := log.Append([]int{i % 2}, ApplicationSingle, GateHadamard)
		if err != nil {
			panic(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := archive.Store(log)
		if err != nil {
			panic(err)
		}
	}
}
