package hamtrie

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestWatchableMapNotifiesOnMutation(t *testing.T) {
	c := qt.New(t)
	m := NewWatchableMap[string, int](XXHashString)
	w := m.WatchLen()

	done := make(chan int)
	go func() {
		w.Next()
		done <- w.Value()
	}()

	m.Insert("a", 1)
	c.Assert(<-done, qt.Equals, 1)

	w2 := m.WatchLen()
	done2 := make(chan int)
	go func() {
		w2.Next()
		done2 <- w2.Value()
	}()
	m.Delete("a")
	c.Assert(<-done2, qt.Equals, 0)
}
