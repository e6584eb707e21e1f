// Command bencfmt validates a bencoded file and optionally re-serializes
// it, as a round-trip smoke test for the decode/benc packages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/benc"
	"github.com/scigolib/bencode/decode"
	"github.com/scigolib/bencode/validate"
)

func main() {
	write := flag.String("write", "", "if set, re-serialize the decoded value to this path")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bencfmt [flags] <file>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	file := args[0]
	data, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("failed to read file: %v", err)
	}

	switch end := validate.Validate(data); {
	case end == validate.ShortInput:
		log.Fatalf("%s: short input (truncated bencode value)", file)
	case end == validate.Malformed:
		log.Fatalf("%s: malformed bencode", file)
	default:
		fmt.Printf("%s: valid, value ends at offset %d of %d\n", file, end, len(data))
		if end != len(data) {
			fmt.Printf("%s: %d trailing byte(s) after the first value\n", file, len(data)-end)
		}
	}

	if *write == "" {
		return
	}

	a := arena.New()
	root, err := decode.Decode(a, data)
	if err != nil {
		log.Fatalf("decode failed after successful validate: %v", err)
	}

	out := benc.ToHostBuffer(root)
	if err := os.WriteFile(*write, out, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *write, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(out), *write)
}
