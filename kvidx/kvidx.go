/*
Package kvidx is a thin ordered index on top of Bolt, keyed by lexkey
encodings. Because lexkey keys sort byte-wise exactly like the values they
encode, range scans over a keyspace come back in natural value order with no
custom comparator.

Keys are any lexkey.KeyMarshaler (tuples, struct keys, or your own types);
values are msgpack.
*/
package kvidx

import (
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"github.com/andreyvit/lexkey"
)

// Keyspace names an isolated ordered collection of key-value pairs, stored
// as a root Bolt bucket.
type Keyspace string

type Store struct {
	bdb    *bbolt.DB
	logger *slog.Logger
}

type Options struct {
	Logger    *slog.Logger
	IsTesting bool
	MmapSize  int
}

func Open(path string, opt Options) (*Store, error) {
	bopt := &bbolt.Options{}
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, bopt)
	if err != nil {
		return nil, fmt.Errorf("kvidx: %w", err)
	}

	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{bdb: bdb, logger: logger}, nil
}

func (s *Store) Bolt() *bbolt.DB {
	return s.bdb
}

func (s *Store) Close() error {
	return s.bdb.Close()
}

// Put stores value under key within ks, creating the keyspace as needed.
func (s *Store) Put(ks Keyspace, key lexkey.KeyMarshaler, value any) error {
	k := key.AppendKey(nil)
	v := appendMsgpack(nil, value)
	return s.bdb.Update(func(btx *bbolt.Tx) error {
		buck, err := btx.CreateBucketIfNotExists([]byte(ks))
		if err != nil {
			return fmt.Errorf("kvidx: %s: %w", ks, err)
		}
		return buck.Put(k, v)
	})
}

// Get loads the value stored under key into ptr. The boolean reports whether
// the key was present.
func (s *Store) Get(ks Keyspace, key lexkey.KeyMarshaler, ptr any) (bool, error) {
	k := key.AppendKey(nil)
	var found bool
	err := s.bdb.View(func(btx *bbolt.Tx) error {
		buck := btx.Bucket([]byte(ks))
		if buck == nil {
			return nil
		}
		raw := buck.Get(k)
		if raw == nil {
			return nil
		}
		found = true
		return decodeMsgpack(raw, ptr)
	})
	return found, err
}

func (s *Store) Delete(ks Keyspace, key lexkey.KeyMarshaler) error {
	k := key.AppendKey(nil)
	return s.bdb.Update(func(btx *bbolt.Tx) error {
		buck := btx.Bucket([]byte(ks))
		if buck == nil {
			return nil
		}
		return buck.Delete(k)
	})
}

// Scan iterates ks in key order over the given range, invoking fn with the
// raw encoded key and raw msgpack value; decode the key with a
// lexkey.Decoder and the value with DecodeValue. Returning a non-nil error
// from fn stops the scan and propagates the error.
//
// Key and value are owned by Bolt and are only valid for the duration of
// the call. The same goes for anything decoded from them without a copy:
// lexkey.Decoder.Bytes aliases its input when the field contains no escape
// markers. Copy what you keep.
func (s *Store) Scan(ks Keyspace, rang Range, fn func(key, value []byte) error) error {
	return s.bdb.View(func(btx *bbolt.Tx) error {
		buck := btx.Bucket([]byte(ks))
		if buck == nil {
			return nil
		}
		c := cursor{rang: rang, bcur: buck.Cursor(), logger: s.logger}
		for c.next() {
			if err := fn(c.k, c.v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of keys within the range.
func (s *Store) Count(ks Keyspace, rang Range) (int, error) {
	var n int
	err := s.Scan(ks, rang, func(key, value []byte) error {
		n++
		return nil
	})
	return n, err
}
