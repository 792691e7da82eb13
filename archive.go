package qlog

import (
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/256dpi/qlog/seq"
)

// ArchiveConfig is used to configure an archive.
type ArchiveConfig struct {
	// The directory of the database.
	Directory string `yaml:"directory"`

	// The prefix for all archive keys.
	Prefix string `yaml:"prefix"`

	// Whether writes are synced to disk.
	Sync bool `yaml:"sync"`

	// Whether the database is kept in memory. Test only.
	InMemory bool `yaml:"inMemory"`

	// The logger used to report stores and trims.
	Logger *zap.Logger `yaml:"-"`
}

// WithDefaults returns a copy of the config with missing fields set to their
// default values.
func (c ArchiveConfig) WithDefaults() ArchiveConfig {
	cpy := c
	if cpy.Prefix == "" {
		cpy.Prefix = "qlog"
	}
	return cpy
}

type archivedEntry struct {
	Qubits      []int  `cbor:"q"`
	Gate        string `cbor:"g"`
	Application string `cbor:"a"`
}

type archivedLog struct {
	Qubits   int             `cbor:"q"`
	Capacity int             `cbor:"c"`
	Entries  []archivedEntry `cbor:"e"`
}

// Archive stores snapshots of logs in a pebble database. Snapshots are
// identified by sequences that increase with the time of storage.
type Archive struct {
	db     *pebble.DB
	config ArchiveConfig
	logger *zap.Logger
	lower  []byte
	upper  []byte
	write  *pebble.WriteOptions
}

// OpenArchive will open or create the archive described by the config.
func OpenArchive(config ArchiveConfig) (*Archive, error) {
	// apply defaults
	config = config.WithDefaults()

	// prepare options
	opts := &pebble.Options{}

	// check directory
	if config.InMemory {
		opts.FS = vfs.NewMem()
	} else if config.Directory == "" {
		panic("qlog: missing directory")
	} else {
		err := os.MkdirAll(config.Directory, 0777)
		if err != nil {
			return nil, errors.Wrap(err, "open archive")
		}
	}

	// open db
	db, err := pebble.Open(config.Directory, opts)
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}

	// set default logger
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// prepare write options
	write := pebble.NoSync
	if config.Sync {
		write = pebble.Sync
	}

	return &Archive{
		db:     db,
		config: config,
		logger: logger,
		lower:  append([]byte(config.Prefix), '#'),
		upper:  append([]byte(config.Prefix), '#'+1),
		write:  write,
	}, nil
}

// Store will save a snapshot of the log and return its identifier.
func (a *Archive) Store(log *Log) (uint64, error) {
	// check handle
	if log.Destroyed() {
		return 0, ErrInvalidHandle
	}

	// prepare record
	record := archivedLog{
		Qubits:   log.Qubits(),
		Capacity: log.Capacity(),
		Entries:  make([]archivedEntry, 0, log.Size()),
	}

	// add entries
	log.Scan(func(_ int, e *Entry) bool {
		record.Entries = append(record.Entries, archivedEntry{
			Qubits:      e.Qubits(),
			Gate:        e.gate.String(),
			Application: e.application.String(),
		})
		return true
	})

	// encode record
	value, err := cbor.Marshal(record)
	if err != nil {
		return 0, errors.Wrap(err, "store log")
	}

	// generate identifier
	id := seq.Generate()

	// set entry
	err = a.db.Set(a.makeKey(id), value, a.write)
	if err != nil {
		return 0, errors.Wrap(err, "store log")
	}

	a.logger.Debug("stored log",
		zap.Uint64("id", id),
		zap.Int("size", log.Size()),
	)

	return id, nil
}

// Load will rebuild the snapshot with the specified identifier into a new
// log. It returns ErrNotFound if the snapshot does not exist.
func (a *Archive) Load(id uint64) (*Log, error) {
	// get value
	value, closer, err := a.db.Get(a.makeKey(id))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "load log")
	}

	// decode record
	var record archivedLog
	err = cbor.Unmarshal(value, &record)
	_ = closer.Close()
	if err != nil {
		return nil, errors.Wrap(err, "load log")
	}

	// create log
	log, err := NewLog(record.Qubits, record.Capacity)
	if err != nil {
		return nil, errors.Wrap(err, "load log")
	}

	// append entries
	for i, entry := range record.Entries {
		// parse names
		gate, ok := ParseGate(entry.Gate)
		if !ok {
			log.Destroy()
			return nil, errors.Wrapf(ErrInvalidEntry, "entry %d: unknown gate %q", i, entry.Gate)
		}
		app, ok := ParseApplication(entry.Application)
		if !ok {
			log.Destroy()
			return nil, errors.Wrapf(ErrInvalidEntry, "entry %d: unknown application %q", i, entry.Application)
		}

		// append entry
		err = log.Append(entry.Qubits, app, gate)
		if err != nil {
			log.Destroy()
			return nil, errors.Wrapf(err, "entry %d", i)
		}
	}

	return log, nil
}

// List returns the identifiers of all stored snapshots in ascending order.
func (a *Archive) List() ([]uint64, error) {
	// create iterator
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: a.lower,
		UpperBound: a.upper,
	})
	if err != nil {
		return nil, errors.Wrap(err, "list logs")
	}

	// collect identifiers
	var list []uint64
	for iter.First(); iter.Valid(); iter.Next() {
		// parse key
		id, err := seq.Decode(iter.Key()[len(a.lower):])
		if err != nil {
			_ = iter.Close()
			return nil, errors.Wrap(err, "list logs")
		}

		list = append(list, id)
	}

	// close iterator
	err = iter.Close()
	if err != nil {
		return nil, errors.Wrap(err, "list logs")
	}

	return list, nil
}

// Delete will remove the snapshot with the specified identifier.
func (a *Archive) Delete(id uint64) error {
	// delete entry
	err := a.db.Delete(a.makeKey(id), a.write)
	if err != nil {
		return errors.Wrap(err, "delete log")
	}

	return nil
}

// Trim will delete the oldest snapshots so that at most the specified amount
// of snapshots remain. It returns the number of deleted snapshots.
func (a *Archive) Trim(retention int) (int, error) {
	// get identifiers
	list, err := a.List()
	if err != nil {
		return 0, err
	}

	// skip if within retention
	if retention < 0 {
		retention = 0
	}
	if len(list) <= retention {
		return 0, nil
	}

	// delete oldest snapshots
	batch := a.db.NewBatch()
	defer batch.Close()
	for _, id := range list[:len(list)-retention] {
		err = batch.Delete(a.makeKey(id), nil)
		if err != nil {
			return 0, errors.Wrap(err, "trim logs")
		}
	}

	// commit batch
	err = batch.Commit(a.write)
	if err != nil {
		return 0, errors.Wrap(err, "trim logs")
	}

	// get count
	n := len(list) - retention

	a.logger.Debug("trimmed logs",
		zap.Int("deleted", n),
		zap.Int("retained", retention),
	)

	return n, nil
}

// Close will close the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) makeKey(id uint64) []byte {
	b := make([]byte, 0, len(a.lower)+seq.EncodedLength)
	return append(append(b, a.lower...), seq.Encode(id)...)
}
