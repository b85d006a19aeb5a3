package cmd

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// RunDiff compares two exported profile JSON files.
func RunDiff(pathA, pathB string) error {
	a, err := os.ReadFile(pathA)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", pathA, err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", pathB, err)
	}

	if string(a) == string(b) {
		fmt.Println("No changes detected.")
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: pathA,
		ToFile:   pathB,
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	fmt.Print(text)

	return fmt.Errorf("profiles differ")
}
