package main

import (
	"fmt"
	"time"

	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[int, string](time.Second)
	defer kv.Clear()

	kv.Set(5, "5")

	fmt.Println("Touching key 5 every 500ms for 3s...")
	startTime := time.Now()
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		v, ok := kv.Get(5)
		fmt.Printf("elapsed=%v v=%s ok=%v\n", time.Since(startTime).Round(time.Millisecond), v, ok)
		if time.Since(startTime) >= 3*time.Second {
			break
		}
	}

	fmt.Println("Idling for 1.5s...")
	time.Sleep(1500 * time.Millisecond)
	fmt.Printf("size=%d\n", kv.Len())
}
