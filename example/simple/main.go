package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, *rat.Rational](time.Second)
	kv.Set("wer", rat.Rat(0))
	log.Println(kv.Get("wer"))
	kv.Clear()
}
