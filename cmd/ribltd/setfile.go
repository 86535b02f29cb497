package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/samWighton/rateless-iblt/riblt"
	"github.com/samWighton/rateless-iblt/store"
)

// loadSet reads a newline-delimited file of hex-encoded symbols into a
// store.MemSet. Blank lines and lines starting with '#' are ignored.
func loadSet(path string) (*store.MemSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol set %s: %w", path, err)
	}
	defer f.Close()

	set := store.NewMemSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("decode line %q: %w", line, err)
		}
		if err := set.Add(riblt.ByteSymbol(b)); err != nil {
			return nil, fmt.Errorf("add symbol: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read symbol set %s: %w", path, err)
	}
	return set, nil
}
