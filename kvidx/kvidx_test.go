package kvidx

import (
	"os"
	"reflect"
	"testing"

	"github.com/andreyvit/lexkey"
)

type Account struct {
	Name    string `msgpack:"n"`
	Balance int64  `msgpack:"b"`
}

const accounts = Keyspace("Accounts")

func TestPutGetDelete(t *testing.T) {
	s := setup(t)

	a1 := Account{Name: "alice", Balance: 100}
	ensure(t, s.Put(accounts, lexkey.Tup2(uint32(1), "alice"), a1))

	var got Account
	found := must(s.Get(accounts, lexkey.Tup2(uint32(1), "alice"), &got))
	if !found {
		t.Fatalf("** key not found")
	}
	deepEqual(t, got, a1)

	found = must(s.Get(accounts, lexkey.Tup2(uint32(1), "bob"), &got))
	if found {
		t.Errorf("** found a key that was never put")
	}

	ensure(t, s.Delete(accounts, lexkey.Tup2(uint32(1), "alice")))
	found = must(s.Get(accounts, lexkey.Tup2(uint32(1), "alice"), &got))
	if found {
		t.Errorf("** found a deleted key")
	}
}

func TestGetFromMissingKeyspace(t *testing.T) {
	s := setup(t)
	var got Account
	found := must(s.Get(Keyspace("Nope"), lexkey.Tup2(uint32(1), "x"), &got))
	if found {
		t.Errorf("** found a key in a keyspace that was never written")
	}
}

func TestScanOrder(t *testing.T) {
	s := setup(t)

	// Insert out of order; scans must come back in (org, name) order,
	// negative balances notwithstanding.
	rows := []struct {
		org  uint32
		name string
	}{
		{2, "bob"}, {1, "zed"}, {2, "alice"}, {1, "ada"}, {3, "x"},
	}
	for i, r := range rows {
		ensure(t, s.Put(accounts, lexkey.Tup2(r.org, r.name), Account{Name: r.name, Balance: int64(i)}))
	}

	deepEqual(t, scanNames(t, s, Full()), []string{"ada", "zed", "alice", "bob", "x"})
	deepEqual(t, scanNames(t, s, Full().Reversed()), []string{"x", "bob", "alice", "zed", "ada"})

	// All keys of org 2, by encoded prefix.
	org2 := lexkey.AppendUint32(nil, 2)
	deepEqual(t, scanNames(t, s, Prefixed(org2)), []string{"alice", "bob"})
	deepEqual(t, scanNames(t, s, Prefixed(org2).Reversed()), []string{"bob", "alice"})

	// Bounded scans.
	k := func(org uint32, name string) []byte {
		return lexkey.MarshalKey(lexkey.Tup2(org, name))
	}
	deepEqual(t, scanNames(t, s, IO(k(2, "alice"))), []string{"alice", "bob", "x"})
	deepEqual(t, scanNames(t, s, EO(k(2, "alice"))), []string{"bob", "x"})
	deepEqual(t, scanNames(t, s, OI(k(2, "alice"))), []string{"ada", "zed", "alice"})
	deepEqual(t, scanNames(t, s, OE(k(2, "alice"))), []string{"ada", "zed"})
	deepEqual(t, scanNames(t, s, II(k(1, "zed"), k(2, "bob"))), []string{"zed", "alice", "bob"})
	deepEqual(t, scanNames(t, s, EE(k(1, "zed"), k(2, "bob"))), []string{"alice"})
	deepEqual(t, scanNames(t, s, IE(k(1, "zed"), k(2, "bob"))), []string{"zed", "alice"})
	deepEqual(t, scanNames(t, s, EI(k(1, "zed"), k(2, "bob"))), []string{"alice", "bob"})

	deepEqual(t, scanNames(t, s, II(k(1, "zed"), k(2, "bob")).Reversed()), []string{"bob", "alice", "zed"})

	// Reversed scans with an exclusive upper bound start just below it.
	deepEqual(t, scanNames(t, s, IE(k(1, "zed"), k(2, "bob")).Reversed()), []string{"alice", "zed"})
	deepEqual(t, scanNames(t, s, EE(k(1, "zed"), k(2, "bob")).Reversed()), []string{"alice"})
	deepEqual(t, scanNames(t, s, OE(k(2, "alice")).Reversed()), []string{"zed", "ada"})
	// Upper bound equal to the very last key.
	deepEqual(t, scanNames(t, s, OE(k(3, "x")).Reversed()), []string{"bob", "alice", "zed", "ada"})
	// Upper bounds absent from the store, in the middle and above all keys.
	deepEqual(t, scanNames(t, s, IE(k(1, "ada"), k(2, "b")).Reversed()), []string{"alice", "zed", "ada"})
	deepEqual(t, scanNames(t, s, OE(k(9, "z")).Reversed()), []string{"x", "bob", "alice", "zed", "ada"})

	n := must(s.Count(accounts, Prefixed(org2)))
	deepEqual(t, n, 2)
}

func TestScanDecodesKeys(t *testing.T) {
	s := setup(t)
	ensure(t, s.Put(accounts, lexkey.Tup2(uint32(7), "greg"), Account{Name: "greg"}))

	ensure(t, s.Scan(accounts, Full(), func(key, value []byte) error {
		var k lexkey.Tuple2[uint32, string]
		if err := lexkey.UnmarshalKey(key, &k); err != nil {
			return err
		}
		deepEqual(t, k, lexkey.Tup2(uint32(7), "greg"))

		var v Account
		if err := DecodeValue(value, &v); err != nil {
			return err
		}
		deepEqual(t, v.Name, "greg")
		return nil
	}))
}

func TestSignedKeysScanInNumericOrder(t *testing.T) {
	s := setup(t)
	ks := Keyspace("Signed")
	for _, v := range []int32{5, -3, 0, -100, 77} {
		ensure(t, s.Put(ks, lexkey.Tup2(v, ""), Account{Balance: int64(v)}))
	}
	var order []int64
	ensure(t, s.Scan(ks, Full(), func(key, value []byte) error {
		var v Account
		if err := DecodeValue(value, &v); err != nil {
			return err
		}
		order = append(order, v.Balance)
		return nil
	}))
	deepEqual(t, order, []int64{-100, -3, 0, 5, 77})
}

func scanNames(t testing.TB, s *Store, rang Range) []string {
	t.Helper()
	var names []string
	ensure(t, s.Scan(accounts, rang, func(key, value []byte) error {
		var v Account
		if err := DecodeValue(value, &v); err != nil {
			return err
		}
		names = append(names, v.Name)
		return nil
	}))
	return names
}

func setup(t testing.TB) *Store {
	t.Helper()

	f, err := os.CreateTemp("", "kvidx_test_*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := Open(f.Name(), Options{IsTesting: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func ensure(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatal(err)
	}
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}
