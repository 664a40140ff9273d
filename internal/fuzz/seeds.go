package fuzztests

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 4 << 10 // 4 KiB — шаблоны короткие

var builtinSeeds = []string{
	"",
	"abc",
	"%hello",
	"abc %-5.10hello(x)",
	"%(%hello %OTT)",
	"%-4(%hello)",
	"%.-3(%hello)",
	"%(A(B)C)",
	`\(x\)\%`,
	`\q\`,
	"%X{a, 'b,c', \"d\\\"e\"}",
	"%d{HH:mm:ss.SSS, UTC}",
	"%",
	"%5",
	"%-x",
	"a)b",
	"%(%(%(",
	"%x{",
	"%logger{0}",
	"日本%-6msg|",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add(s)
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет строки из testdata/patterns.txt, если файл есть.
func addTestdataSeeds(f *testing.F) {
	path := filepath.Join("testdata", "patterns.txt")
	// #nosec G304 -- path is a fixed repository location
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = file.Close() }()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		f.Add(clampSeed(line))
	}
}

func clampSeed(s string) string {
	if len(s) <= maxSeedBytes {
		return s
	}
	return s[:maxSeedBytes]
}
