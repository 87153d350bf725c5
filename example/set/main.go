package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, *rat.Rational](time.Second)

	kv.Set("x", rat.Rat("0.4")).Set("y", rat.Rat("0.5"))

	log.Println(kv.Len(), kv.GetOr("x", nil), kv.GetOr("y", nil))
}
