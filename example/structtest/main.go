package main

import (
	"log"
	"time"

	"github.com/xtdlib/ttlmap"
)

type Human struct {
	Name   string
	Age    int
	Visits int
}

func main() {
	kv := ttlmap.New[string, *Human](30 * time.Minute)
	defer kv.Clear()

	kv.Set("a", &Human{Name: "Alice", Age: 30})
	kv.Set("b", &Human{Name: "Brian", Age: 30})

	kv.Update("a", func(h *Human) *Human {
		h.Visits++
		return h
	})

	h, ok := kv.Get("a")
	if !ok || h.Name != "Alice" || h.Visits != 1 {
		panic("Get failed")
	}

	kv.ForEach(func(h *Human, key string, _ *ttlmap.Map[string, *Human]) {
		log.Printf("%s: %+v", key, *h)
	})
}
