package ioutilx

import (
	"fmt"
	"os"
	"strings"
)

var (
	OS       = InjectableOS{}
	IOReader = InjectableIOReader{}
)

// FileOrString is a flag value that is read from disk when it names an
// existing file and taken literally otherwise.
type FileOrString string

func (f FileOrString) Bytes(statter Statter, reader FileReader) ([]byte, error) {
	value := string(f)
	stat, err := statter.Stat(value)
	if err != nil {
		return []byte(strings.Replace(value, "\\n", "\n", -1)), nil
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path '%s' is a directory, not a file", value)
	}

	return reader.ReadFile(value)
}

type FileReader interface {
	ReadFile(string) ([]byte, error)
}

type InjectableIOReader struct{}

func (InjectableIOReader) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

type Statter interface {
	Stat(string) (os.FileInfo, error)
}

type InjectableOS struct{}

func (InjectableOS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// OpenLogFile opens the security audit log for appending, creating it with
// owner-only permissions if needed.
func OpenLogFile(filePath string) (*os.File, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return file, nil
}
