package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, *rat.Rational](time.Second)
	defer kv.Clear()

	kv.AddRat("k", "1/3")
	kv.AddRat("k", "1/3")
	if !kv.GetOr("k", nil).Equal("2/3") {
		log.Fatal("error")
	}

	kv.AddRat("a", "1")
	kv.AddInt("b", 2)

	if !kv.GetOr("a", nil).Equal("1") {
		log.Fatal("error")
	}
	if !kv.GetOr("b", nil).Equal("2") {
		log.Fatal("error")
	}

	for k, v := range kv.All {
		log.Println(k, v)
	}

	if _, err := ttlmap.New[string, int](time.Second).TryAddRat("n", 1); err != nil {
		log.Println("int map:", err)
	}
}
