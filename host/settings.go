// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	BaseAddr        uint16 `doc:"address of the first image byte"`
	CompactMode     bool   `doc:"compact disassembly output"`
	ColorMode       bool   `doc:"colorized disassembly output"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings(base uint16) *settings {
	return &settings{
		BaseAddr:        base,
		CompactMode:     false,
		ColorMode:       false,
		DisasmLines:     16,
		MemDumpBytes:    64,
		NextDisasmAddr:  base,
		NextMemDumpAddr: base,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.Uint16:
			s = fmt.Sprintf("    %-16s $%04X", f.name, uint16(v.Uint()))
		default:
			s = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", s, f.doc)
	}
}

// Find returns the name of the setting matching a unique prefix of key.
func (s *settings) Find(key string) (string, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Value returns the value of a numeric setting.
func (s *settings) Value(key string) (int64, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return 0, err
	}

	v := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Uint16:
		return int64(v.Uint()), nil
	case reflect.Int:
		return v.Int(), nil
	default:
		return 0, fmt.Errorf("setting '%s' is not a number", f.name)
	}
}

// Parse converts a string value to the setting's type and stores it.
func (s *settings) Parse(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	switch f.kind {
	case reflect.Bool:
		v, err := stringToBool(value)
		if err != nil {
			return err
		}
		return s.Set(key, v)
	default:
		v, err := ParseNumber(value)
		if err != nil {
			return err
		}
		if f.kind == reflect.Uint16 && v > 0xffff {
			return fmt.Errorf("value $%X out of range", v)
		}
		return s.Set(key, v)
	}
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.Bool) != (vIn.Kind() == reflect.Bool) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}
	vInConverted := vIn.Convert(f.typ)

	vOut := reflect.ValueOf(s).Elem().Field(f.index)
	vOut.Set(vInConverted)

	return nil
}
