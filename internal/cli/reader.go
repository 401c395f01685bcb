package cli

import (
	"bufio"
	"fmt"
	"io"
)

// ScannerReader is a LineReader over any io.Reader, for pipes and tests.
// Prompts go to out when it is non-nil.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *ScannerReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *ScannerReader) Readline() (string, error) {
	if r.out != nil && r.prompt != "" {
		fmt.Fprint(r.out, r.prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}
