// script_test.go — end-to-end fixtures.
//
// Each YAML file under testdata/scripts holds a list of programs with their
// expected output (or expected error fragment). Keeping the programs in data
// files makes it cheap to port fixtures from other implementations and to see
// whole programs without Go string-escaping noise.
package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type scriptCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadScriptCases(t *testing.T, path string) []scriptCase {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var cases []scriptCase
	if err := dec.Decode(&cases); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cases
}

func Test_Scripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scripts", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no script fixtures found")
	}

	for _, file := range files {
		file := file
		t.Run(strings.TrimSuffix(filepath.Base(file), ".yaml"), func(t *testing.T) {
			for _, c := range loadScriptCases(t, file) {
				c := c
				t.Run(c.Name, func(t *testing.T) {
					var buf bytes.Buffer
					ip := NewInterpreter()
					ip.SetOutput(&buf)
					runErr := ip.RunNamed(c.Name, c.Source)

					if c.Error != "" {
						if runErr == nil {
							t.Fatalf("expected error containing %q, program succeeded with output:\n%s", c.Error, buf.String())
						}
						if !strings.Contains(runErr.Error(), c.Error) {
							t.Fatalf("error does not mention %q:\n%s", c.Error, runErr.Error())
						}
						return
					}
					if runErr != nil {
						t.Fatalf("unexpected error:\n%s", runErr)
					}
					if got := buf.String(); got != c.Output {
						t.Fatalf("output mismatch\nwant:\n%s\ngot:\n%s", c.Output, got)
					}
				})
			}
		})
	}
}
