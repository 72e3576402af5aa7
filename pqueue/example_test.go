package pqueue_test

import (
	"fmt"

	"github.com/katalvlaran/tilepath/pqueue"
)

// ExampleQueue demonstrates minimum-first extraction with FIFO tie-breaking.
func ExampleQueue() {
	q := pqueue.New[string]()
	q.Enqueue("tree", 4)
	q.Enqueue("grass", 1)
	q.Enqueue("bush", 2)
	q.Enqueue("meadow", 1)

	for q.Count() > 0 {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}
	_, err := q.Dequeue()
	fmt.Println(err)

	// Output:
	// grass
	// meadow
	// bush
	// tree
	// pqueue: queue is empty
}
