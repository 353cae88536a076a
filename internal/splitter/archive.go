package splitter

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// archiveWriter appends files to a zip on disk as they are produced.
type archiveWriter struct {
	path string
	file *os.File
	zw   *zip.Writer
}

func createArchive(path string) (*archiveWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &archiveWriter{path: path, file: f, zw: zip.NewWriter(f)}, nil
}

// add copies the file at path into the archive under its base name.
// Entry names are not deduplicated.
func (a *archiveWriter) add(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := a.zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy %s: %w", header.Name, err)
	}
	return nil
}

// finish writes the central directory and closes the file
func (a *archiveWriter) finish() error {
	if err := a.zw.Close(); err != nil {
		a.file.Close()
		a.file = nil
		return err
	}
	err := a.file.Close()
	a.file = nil
	return err
}

// abort releases the file handle without finalizing the zip
func (a *archiveWriter) abort() {
	if a.file != nil {
		a.file.Close()
		a.file = nil
	}
}
