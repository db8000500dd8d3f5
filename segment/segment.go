// Package segment encodes display content for the ZTH05 segment LCD.
//
// A Frame holds the full 11-byte message sent to the controller. Digit byte n
// of the LCD lives at frame byte PrefixSize+n.
package segment

import "fmt"

const (
	// FrameSize is the number of bytes sent to the controller per write.
	FrameSize = 11
	// PrefixSize is the length of the fixed command prefix.
	PrefixSize = 5
	// DigitCount is the number of mutable digit bytes.
	DigitCount = FrameSize - PrefixSize
)

// Prefix is the command part of every frame.
var Prefix = [PrefixSize]byte{0xB6, 0xFC, 0xC8, 0xE8, 0x08}

// Digit byte indices.
const (
	bigHundreds = 0
	bigTens     = 1
	bigOnes     = 2
	symbols     = 3
	smallTens   = 4
	smallOnes   = 5
)

// Per-element bit masks within their digit byte.
const (
	bigMinus    byte = 1 << 1 // digit 0
	bigThousand byte = 1 << 3 // digit 0, the leading "1"
	bigPoint    byte = 1 << 3 // digit 1
	unitC       byte = 1 << 3 // digit 2, lower bar of "C"

	smileyHappy  byte = 1 << 0 // digit 3
	smileySad    byte = 1 << 1 // digit 3
	smileyFace   byte = 1 << 4 // digit 3
	batterySym   byte = 1 << 5 // digit 3
	unitDegree   byte = 1 << 6 // digit 3
	unitF        byte = 1 << 7 // digit 3
	smileyMask        = smileyFace | smileyHappy | smileySad
	unitSymbolMask    = unitDegree | unitF

	smallMinus byte = 1 << 1 // digit 4
	connectSym byte = 1 << 3 // digit 4
	percentSym byte = 1 << 3 // digit 5

	underscore byte = 1 << 7 // bottom segment of any digit
)

// Overflow glyphs.
const (
	glyphBigH byte = 0b01100111
	glyphBigI byte = 0b01000000
	glyphBigL byte = 0b11100000
	glyphBigO byte = 0b11000110

	glyphSmallH byte = 1<<0 | 1<<1 | 1<<2 | 1<<5 | 1<<6
	glyphSmallI byte = 1 << 6
	glyphSmallL byte = 1<<5 | 1<<6 | 1<<7
	glyphSmallO byte = 1<<1 | 1<<2 | 1<<6 | 1<<7
)

// BigDigits maps a hex digit to the segments of the large digits 0-2.
var BigDigits = [16]byte{
	0b11110101, // 0
	0b00000101, // 1
	0b11010011, // 2
	0b10010111, // 3
	0b00100111, // 4
	0b10110110, // 5
	0b11110110, // 6
	0b00010101, // 7
	0b11110111, // 8
	0b10110111, // 9
	0b01110111, // A
	0b11100110, // b
	0b11110000, // C
	0b11000111, // d
	0b11110010, // E
	0b01110010, // F
}

// SmallDigits maps a hex digit to the segments of the small digits 4-5.
var SmallDigits = [16]byte{
	0b11110101, // 0
	0b00000101, // 1
	0b11010011, // 2
	0b10010111, // 3
	0b00100111, // 4
	0b10110110, // 5
	0b11110110, // 6
	0b00010101, // 7
	0b11110111, // 8
	0b10110111, // 9
	0b01110111, // A
	0b11100110, // b
	0b11110000, // C
	0b11000111, // d
	0b11110010, // E
	0b01110010, // F
}

// Frame is the complete message sent to the controller.
type Frame [FrameSize]byte

// NewFrame returns a frame with the command prefix set and all segments off.
func NewFrame() Frame {
	var f Frame
	copy(f[:PrefixSize], Prefix[:])
	return f
}

// Bytes returns the frame as sent on the wire.
func (f *Frame) Bytes() []byte {
	return f[:]
}

// Prefix returns the command prefix of the frame.
func (f *Frame) Prefix() []byte {
	return f[:PrefixSize]
}

// Digits returns the digit bytes. Writes through the slice change the frame.
func (f *Frame) Digits() []byte {
	return f[PrefixSize:]
}

// DigitsEqual reports whether both frames light the same segments.
func (f *Frame) DigitsEqual(o *Frame) bool {
	return [DigitCount]byte(f.Digits()) == [DigitCount]byte(o.Digits())
}

// SetDigits replaces all digit bytes.
func (f *Frame) SetDigits(d [DigitCount]byte) {
	copy(f.Digits(), d[:])
}

// ClearDigits turns every segment off.
func (f *Frame) ClearDigits() {
	f.SetDigits([DigitCount]byte{})
}

// FillDigits turns every segment on.
func (f *Frame) FillDigits() {
	f.SetDigits(AllOnPattern)
}

// String returns a hex dump of the frame.
func (f Frame) String() string {
	return fmt.Sprintf("% X | % X", f[:PrefixSize], f[PrefixSize:])
}

func (f *Frame) digit(i int) *byte {
	return &f[PrefixSize+i]
}
