package testutil

import (
	"errors"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline to be set")
	}
	if time.Until(deadline) > TestTimeout {
		t.Fatal("deadline exceeds test timeout")
	}
}

func TestEventually(t *testing.T) {
	var hits int
	Eventually(t, time.Second, func() bool {
		hits++
		return hits >= 3
	})
	if hits < 3 {
		t.Fatalf("condition polled %d times, want at least 3", hits)
	}
}

func TestMockWriter(t *testing.T) {
	mw := NewMockWriter()

	n, err := mw.Write([]byte("hello"))
	AssertNoError(t, err)
	AssertEqual(t, n, 5)
	AssertEqual(t, mw.String(), "hello")
	AssertEqual(t, mw.WriteCount(), 1)
}

func TestMockWriterErrorOnNth(t *testing.T) {
	mw := NewMockWriter()
	mw.SetErrorOnNth(2)

	_, err := mw.Write([]byte("a"))
	AssertNoError(t, err)

	_, err = mw.Write([]byte("b"))
	AssertError(t, err)
}

func TestMockWriterAlwaysError(t *testing.T) {
	mw := NewMockWriter()
	sentinel := errors.New("disk full")
	mw.SetAlwaysError(sentinel)

	_, err := mw.Write([]byte("a"))
	AssertErrorIs(t, err, sentinel)
}
