// pkg/buflist/example_test.go

package buflist_test

import (
	"fmt"
	"io"
	"os"

	"AveBuf/pkg/buflist"
)

// Example of gathering chunks and writing them out in one go
func ExampleBufList() {
	list := buflist.New()
	list.Push([]byte("hello"))
	list.Push([]byte("world"))
	list.Push([]byte("!"))

	fmt.Println(list.Len(), list.NumChunks())
	if _, err := list.WriteTo(os.Stdout); err != nil {
		panic(err)
	}

	// Output:
	// 11 3
	// helloworld!
}

// Example of random access over chunked data
func ExampleCursor() {
	list := buflist.New()
	list.Extend([]byte("ab"), []byte("cde"))

	cursor := buflist.NewCursor(list)
	if _, err := cursor.Seek(3, io.SeekStart); err != nil {
		panic(err)
	}

	rest, _ := io.ReadAll(cursor)
	fmt.Printf("%s\n", rest)

	// Output: de
}
