package main

import (
	"log"
	"sync"
	"time"

	"github.com/xtdlib/rat"
	"github.com/xtdlib/ttlmap"
)

// A per-client request counter that forgets clients after a quiet second.
func main() {
	hits := ttlmap.New[string, *rat.Rational](time.Second)
	defer hits.Clear()

	var wg sync.WaitGroup
	for i := 0; i < 1001; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits.AddInt("10.0.0.1", 1)
		}()
	}
	wg.Wait()

	// it should be 1001
	log.Println(hits.GetOr("10.0.0.1", rat.Rat(0)))

	time.Sleep(1500 * time.Millisecond)
	log.Println("after a quiet second:", hits.GetOption("10.0.0.1").IsPresent())
}
