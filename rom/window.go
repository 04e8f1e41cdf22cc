// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rom

// A Window presents an image as a read-only range of the 16-bit address
// space starting at a base address. Addresses past $FFFF wrap to $0000.
type Window struct {
	Base uint16
	Data []byte
}

// At maps the image into the address space at base.
func (img *Image) At(base uint16) Window {
	return Window{Base: base, Data: img.Data}
}

// Offset returns the image offset of the byte at addr, or -1 if the
// address is outside the window.
func (w Window) Offset(addr uint16) int {
	off := int(addr - w.Base)
	if off >= len(w.Data) {
		return -1
	}
	return off
}

// Contains returns true if the address is inside the window.
func (w Window) Contains(addr uint16) bool {
	return w.Offset(addr) >= 0
}

// End returns the address of the last byte in the window. Images longer
// than 64K are truncated to the address space.
func (w Window) End() uint16 {
	n := min(len(w.Data), 0x10000)
	return uint16(int(w.Base) + n - 1)
}

// LoadBytes copies bytes starting at addr into b and returns the number of
// bytes copied. Copying stops at the end of the window.
func (w Window) LoadBytes(addr uint16, b []byte) int {
	off := w.Offset(addr)
	if off < 0 {
		return 0
	}
	return copy(b, w.Data[off:])
}
