package main

import (
	"log"
	"time"

	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, string](time.Second)

	kv.Set("temp", "expires soon")
	log.Println("Set 'temp' with 1s sliding TTL")

	if v, _ := kv.Get("temp"); v != "expires soon" {
		panic("Expected value 'expires soon'")
	}

	time.Sleep(700 * time.Millisecond)
	if _, ok := kv.Peek("temp"); !ok {
		panic("Expected 'temp' to still exist after 700ms")
	}

	time.Sleep(500 * time.Millisecond)
	if kv.Has("temp") {
		panic("Expected 'temp' to expire: Peek does not extend the TTL")
	}

	kv.Set("temp", "kept alive")
	time.Sleep(700 * time.Millisecond)
	kv.Get("temp")
	time.Sleep(700 * time.Millisecond)
	if !kv.Has("temp") {
		panic("Expected 'temp' to exist: Get slid the TTL forward")
	}
	log.Println(kv.Get("temp"))
}
