package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/sortmap"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Profiling harness: builds a map, then parses and queries it in a loop
// while pprof is served on localhost:6060.
func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	layout := sortmap.Ordered(vec.VarOf(codec.String, vec.Index32), vec.FixedOf(codec.Uint64))
	b := sortmap.NewBuilder(layout)
	for i := range 10000 {
		b.TryAppend(fmt.Sprintf("key-%08d", i), uint64(i))
	}
	data, err := b.Encode()
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 10000; i++ {
		m, err := sortmap.Parse(layout, data)
		if err != nil {
			log.Fatal(err)
		}
		m.Get(fmt.Sprintf("key-%08d", i))
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
