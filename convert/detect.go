package convert

import (
	"archive/zip"
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// enough for filetype matchers
const sniffLen = 262

// isArchiveFile reports zip archives. Extension is checked first so we do
// not have to open every file in a directory.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(header[:n], "zip"), nil
}

// isThreadFile reports thread dumps: .json files holding a JSON object.
func isThreadFile(path string) (bool, error) {
	if !hasThreadExt(path) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return startsWithObject(f)
}

func isThreadInArchive(f *zip.File) (bool, error) {
	if f.FileInfo().IsDir() || !hasThreadExt(f.Name) {
		return false, nil
	}

	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	return startsWithObject(r)
}

func hasThreadExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// startsWithObject checks that the first non-blank character opens JSON
// object.
func startsWithObject(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true, nil
		default:
			return false, nil
		}
	}
}
