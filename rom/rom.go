// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rom loads raw binary images for disassembly.
package rom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// An Image holds the contents of a binary file. Data is never modified
// after loading.
type Image struct {
	Name string // base name of the file
	Path string // path the image was loaded from
	Data []byte
}

// An OpenError is returned when a binary file cannot be opened or read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open '%s': %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Load reads the entire file into memory. No header or signature is
// expected; every byte is image data.
func Load(filename string) (*Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &OpenError{Path: filename, Err: err}
	}
	defer file.Close()

	img, err := Read(file, filename)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Read reads an image from r until EOF.
func Read(r io.Reader, filename string) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &OpenError{Path: filename, Err: err}
	}
	return &Image{
		Name: filepath.Base(filename),
		Path: filename,
		Data: data,
	}, nil
}
