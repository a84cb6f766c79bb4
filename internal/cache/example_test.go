package cache

import (
	"fmt"
	"time"
)

func ExampleCache() {
	c, err := New[string, string](Config{Capacity: 2})
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.Set("greeting", "hello", 0)
	c.Set("session", "abc123", time.Minute)

	if v, ok := c.Get("greeting"); ok {
		fmt.Println(v)
	}

	// The cache is full; inserting a third key evicts the LRU entry.
	c.Set("third", "v", 0)
	_, ok := c.Get("session")
	fmt.Println(ok)

	// Output:
	// hello
	// false
}
