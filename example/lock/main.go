package main

import (
	"fmt"
	"time"

	"github.com/xtdlib/ttlmap"
)

func main() {
	kv := ttlmap.New[string, int](time.Minute)
	defer kv.Clear()

	// Initialize some data
	kv.Set("counter1", 0)
	kv.Set("counter2", 0)

	// Use WithLock to atomically update multiple keys
	kv.WithLock(func(tx *ttlmap.Tx[string, int]) {
		// Read current values
		c1, _ := tx.Get("counter1")
		c2, _ := tx.Get("counter2")

		// Update both atomically
		tx.Set("counter1", c1+10)
		tx.Set("counter2", c2+20)

		fmt.Printf("Inside lock: counter1=%d, counter2=%d\n", c1+10, c2+20)
	})

	c1, _ := kv.Peek("counter1")
	c2, _ := kv.Peek("counter2")
	fmt.Printf("After lock: counter1=%d, counter2=%d\n", c1, c2)
	fmt.Println("--------")

	// Move a value between keys without another caller seeing both or neither
	kv.WithLock(func(tx *ttlmap.Tx[string, int]) {
		if v, ok := tx.Peek("counter1"); ok && tx.Delete("counter1") {
			tx.Set("moved", v)
		}
	})

	// Example using iterators inside the lock
	kv.Set("item1", 100)
	kv.Set("item2", 200)
	kv.Set("item3", 300)

	kv.WithLock(func(tx *ttlmap.Tx[string, int]) {
		fmt.Println("All items inside lock:")
		for k, v := range tx.All {
			fmt.Printf("  %s = %d\n", k, v)
		}
	})
}
