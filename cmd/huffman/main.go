// Package main provides the huffman command line interface.
//
// It compresses a file into a container that carries its own code table,
// decompresses such a container, and prints the code table generated for a
// file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tanagraspace/huffman/huffman"
)

func printVersion() {
	fmt.Printf("huffman %s (Go)\n", huffman.Version)
}

func printHelp(progName string) {
	fmt.Printf("Huffman Prefix-Code Compression (v%s)\n", huffman.Version)
	fmt.Println("=======================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s <input>\n", progName)
	fmt.Printf("  %s -d <input.huf>\n", progName)
	fmt.Printf("  %s -t <input>\n", progName)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -d             Decompress (default is compress)")
	fmt.Println("  -t             Print the code table generated from input")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  Compress:   <input>.huf")
	fmt.Println("  Decompress: <input>.dehuf (or <base>.dehuf if input ends in .huf)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s notes.txt            # compress\n", progName)
	fmt.Printf("  %s -d notes.txt.huf     # decompress\n", progName)
	fmt.Printf("  %s -t notes.txt         # show codes\n", progName)
	fmt.Println()
}

func makeDecompressFilename(input string) string {
	if strings.HasSuffix(input, ".huf") {
		return strings.TrimSuffix(input, ".huf") + ".dehuf"
	}
	return input + ".dehuf"
}

func readInput(inputPath string) ([]byte, bool) {
	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot open input file: %s\n", inputPath)
		return nil, false
	}

	if len(inputData) == 0 {
		fmt.Fprintln(os.Stderr, "Error: Input file is empty")
		return nil, false
	}
	return inputData, true
}

func doCompress(inputPath string) int {
	inputData, ok := readInput(inputPath)
	if !ok {
		return 1
	}

	codec := huffman.NewCodec()
	outputData, err := huffman.Pack(codec, inputData, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Compression failed: %v\n", err)
		return 1
	}

	outputPath := inputPath + ".huf"
	err = os.WriteFile(outputPath, outputData, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot write output file: %s\n", outputPath)
		return 1
	}

	table := codec.CodeTable()
	ratio := float64(len(inputData)) / float64(len(outputData))
	fmt.Printf("Input:       %s (%d bytes)\n", inputPath, len(inputData))
	fmt.Printf("Output:      %s (%d bytes)\n", outputPath, len(outputData))
	fmt.Printf("Ratio:       %.2fx\n", ratio)
	fmt.Printf("Symbols:     %d (code lengths %d-%d bits)\n", table.Len(), table.MinLen(), table.MaxLen())

	return 0
}

func doDecompress(inputPath string) int {
	inputData, ok := readInput(inputPath)
	if !ok {
		return 1
	}

	outputData, err := huffman.Decompress(inputData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Decompression failed: %v\n", err)
		return 1
	}

	outputPath := makeDecompressFilename(inputPath)
	err = os.WriteFile(outputPath, outputData, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot write output file: %s\n", outputPath)
		return 1
	}

	expansion := float64(len(outputData)) / float64(len(inputData))
	fmt.Printf("Input:       %s (%d bytes)\n", inputPath, len(inputData))
	fmt.Printf("Output:      %s (%d bytes)\n", outputPath, len(outputData))
	fmt.Printf("Expansion:   %.2fx\n", expansion)

	return 0
}

func doTable(inputPath string) int {
	inputData, ok := readInput(inputPath)
	if !ok {
		return 1
	}

	table := huffman.GenerateCodeTable(inputData)
	fmt.Print(table.String())
	return 0
}

func main() {
	args := os.Args
	progName := args[0]

	if len(args) < 2 || args[1] == "-h" || args[1] == "--help" {
		printHelp(progName)
		if len(args) < 2 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if args[1] == "-v" || args[1] == "--version" {
		printVersion()
		os.Exit(0)
	}

	switch args[1] {
	case "-d", "-t":
		if len(args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: %s requires 1 argument\n", args[1])
			fmt.Fprintf(os.Stderr, "Usage: %s %s <input>\n", progName, args[1])
			os.Exit(1)
		}
		if args[1] == "-d" {
			os.Exit(doDecompress(args[2]))
		}
		os.Exit(doTable(args[2]))
	default:
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Error: Compress requires 1 argument")
			fmt.Fprintf(os.Stderr, "Usage: %s <input>\n", progName)
			os.Exit(1)
		}
		os.Exit(doCompress(args[1]))
	}
}
