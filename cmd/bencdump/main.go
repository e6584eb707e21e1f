// Command bencdump decodes a bencoded file and prints its tree structure,
// for debugging .torrent files and similar bencode-encoded data.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/bencode/arena"
	"github.com/scigolib/bencode/decode"
	"github.com/scigolib/bencode/node"
)

func main() {
	offset := flag.Int64("offset", 0, "byte offset in the file to start decoding from")
	maxString := flag.Int("max-string", 64, "truncate printed string payloads longer than this many bytes")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bencdump [flags] <file>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	file := args[0]
	data, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("failed to read file: %v", err)
	}

	if *offset < 0 || *offset >= int64(len(data)) {
		log.Fatalf("invalid offset: %d (file size: %d)", *offset, len(data))
	}

	a := arena.New()
	root, err := decode.Decode(a, data[*offset:])
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	fmt.Printf("%s: decoded %d bytes starting at offset %d (byte_length=%d)\n", file, root.ByteLength, *offset, root.ByteLength)
	dump(root, 0, *maxString)
}

func dump(n *node.Node, depth int, maxString int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	switch n.Kind {
	case node.KindInteger:
		fmt.Printf("%sinteger %d\n", indent, n.IntegerValue())
	case node.KindString:
		fmt.Printf("%sstring %s\n", indent, formatString(n.StringValue(), maxString))
	case node.KindList:
		fmt.Printf("%slist (%d items)\n", indent, len(n.Children()))
		for _, c := range n.Children() {
			dump(c, depth+1, maxString)
		}
	case node.KindDictionary:
		pairs := n.Children()
		fmt.Printf("%sdictionary (%d pairs)\n", indent, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			fmt.Printf("%s  key %s:\n", indent, formatString(pairs[i].StringValue(), maxString))
			dump(pairs[i+1], depth+2, maxString)
		}
	}
}

func formatString(b []byte, maxLen int) string {
	if len(b) > maxLen {
		return fmt.Sprintf("%q... (%d bytes)", b[:maxLen], len(b))
	}
	return fmt.Sprintf("%q", b)
}
