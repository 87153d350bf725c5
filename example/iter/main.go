package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, *rat.Rational](300 * time.Millisecond)

	kv.Set("walked", rat.Rat(3))
	kv.Set("ranged", rat.Rat(4))

	for range 3 {
		time.Sleep(200 * time.Millisecond)

		// Entries(true) keeps everything alive; All only looks.
		for k, v := range kv.Entries(true) {
			log.Println("touch", k, v)
		}
	}

	for k, v := range kv.All {
		log.Println("still here", k, v)
	}

	time.Sleep(400 * time.Millisecond)
	log.Println("after idling:", kv.Len())
}
