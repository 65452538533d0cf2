package lexkey

import (
	"encoding/hex"
	"errors"
	"reflect"
	"testing"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func wantErr(t testing.TB, err, sentinel error) {
	t.Helper()
	if err == nil {
		t.Errorf("** got nil error, wanted %v", sentinel)
	} else if !errors.Is(err, sentinel) {
		t.Errorf("** got error %q, wanted %v", err, sentinel)
	}
}

func unhex(s string) []byte {
	return must(hex.DecodeString(s))
}
