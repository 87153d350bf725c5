package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, *rat.Rational](time.Second)

	kv.Set("x", rat.Rat("0.1"))
	kv.Set("y", rat.Rat("0.1"))
	kv.Set("z", rat.Rat("0.1"))

	// Overwriting during iteration keeps the key in place; new keys are
	// appended and still visited.
	for k, v := range kv.All {
		if k == "y" {
			kv.Set(k, rat.Rat("0.2"))
			kv.Set("w", rat.Rat("0.3"))
		}
		log.Println(k, v)
	}

	for k := range kv.Keys {
		log.Println(k)
	}

	for k := range kv.KeysBackward {
		log.Println(k)
	}
}
