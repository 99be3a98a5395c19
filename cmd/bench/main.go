package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/quill"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to create")
	adapter := flag.String("adapter", quill.AdapterFS, "Storage adapter: fs or bolt")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quill_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	name := "notes.json"
	if *adapter == quill.AdapterBolt {
		name = "notes.db"
	}
	path := filepath.Join(benchDir, name)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := quill.Open(path, quill.WithAdapter(*adapter), quill.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Every create rewrites the whole list, so this is quadratic in bytes written.
	fmt.Printf("Creating %d notes in %s (%s)...\n", *count, benchDir, *adapter)
	startCreate := time.Now()
	for i := 0; i < *count; i++ {
		if _, err := store.Create(ctx, fmt.Sprintf("Benchmark note %d", i)); err != nil {
			panic(err)
		}
	}
	createDuration := time.Since(startCreate)

	fmt.Println("Reordering...")
	startMove := time.Now()
	for i := 0; i < 100 && *count > 1; i++ {
		if err := store.Reorder(ctx, []int{0}, *count); err != nil {
			panic(err)
		}
	}
	moveDuration := time.Since(startMove)
	if err := store.Close(); err != nil {
		panic(err)
	}

	// Re-open to simulate a new CLI command run.
	fmt.Println("Loading...")
	startLoad := time.Now()
	reopened, err := quill.Open(path, quill.WithAdapter(*adapter), quill.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	loaded := len(reopened.List())
	_ = reopened.Close()

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %s):\n", *count, *adapter)
	fmt.Printf("  Create: %v (%v/op)\n", createDuration, createDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Move x100: %v\n", moveDuration)
	fmt.Printf("  Load: %v (Items: %d)\n", loadDuration, loaded)
	fmt.Printf("--------------------------------------------------\n")
}
