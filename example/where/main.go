package main

import (
	"log"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[int, string](time.Second)

	// Insert some data
	kv.Set(1, "apple")
	kv.Set(5, "banana")
	kv.Set(10, "cherry")
	kv.Set(15, "date")
	kv.Set(20, "elderberry")

	for k, v := range kv.AllWhere(func(k int, _ string) bool { return k > 10 }) {
		log.Printf("  %d: %s\n", k, v)
	}

	log.Println("-")

	for k, v := range kv.AllWhere(func(k int, _ string) bool { return k >= 5 && k <= 15 }) {
		log.Printf("  %d: %s\n", k, v)
	}

	log.Println("-")

	ratios := ttlmap.New[string, *rat.Rational](time.Second)
	ratios.AddRat("k1", "1/3")
	ratios.AddRat("k2", "5/2")
	ratios.AddRat("k3", "3")

	for k, v := range ratios.AllWhere(func(_ string, v *rat.Rational) bool { return !v.Equal("1/3") }) {
		log.Println(k, v)
	}
}
