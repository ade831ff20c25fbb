package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"proxboard/internal/parser"
)

// Offline helper: classify a captured ProxLB log into NDJSON, one
// record per line. Reads the file named on the command line, or stdin
// when absent or "-".
func main() {
	var in io.Reader = os.Stdin
	if len(os.Args) > 1 && os.Args[1] != "-" {
		file, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatalf("Error opening log file: %v", err)
		}
		defer file.Close()
		in = file
	}

	classifier := parser.NewCascadeClassifier()
	out := json.NewEncoder(os.Stdout)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	classified, skipped := 0, 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < parser.MinLineLength {
			skipped++
			continue
		}
		if err := out.Encode(classifier.Classify(line)); err != nil {
			log.Fatalf("Error writing record: %v", err)
		}
		classified++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Classified %d lines (%d skipped as noise)\n", classified, skipped)
}
