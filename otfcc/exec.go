package otfcc

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/s2tfont/otfont"
)

// ExecCodec converts binary fonts by calling the otfcc command line tools.
// The zero value uses `otfccdump` and `otfccbuild` from PATH and reads the
// first font of a collection.
type ExecCodec struct {
	DumpCmd  string // defaults to "otfccdump"
	BuildCmd string // defaults to "otfccbuild"
	TTCIndex int    // index into a font collection (TTC/OTC)
	JSON     JSONCodec
}

var _ otfont.FontCodec = ExecCodec{}

// Decode dumps a binary font to JSON and parses the result.
func (c ExecCodec) Decode(data []byte) (*otfont.Font, error) {
	dir, err := os.MkdirTemp("", "otfcc-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "input.ttc")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	args := []string{path}
	if c.TTCIndex > 0 {
		args = append(args, "--ttc-index", strconv.Itoa(c.TTCIndex))
	}
	out, err := run(orDefault(c.DumpCmd, "otfccdump"), nil, args...)
	if err != nil {
		return nil, err
	}
	return c.JSON.Decode(out)
}

// Encode serializes a font to JSON and compiles it to a binary font.
func (c ExecCodec) Encode(f *otfont.Font) ([]byte, error) {
	js, err := c.JSON.Encode(f)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "otfcc-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "output.ttf")
	if _, err := run(orDefault(c.BuildCmd, "otfccbuild"), js, "-o", path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func run(name string, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	tracer().Debugf("running %s %s", name, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("otfcc: %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
