package segment

// Unit selects the symbol shown next to the big number.
type Unit uint8

const (
	UnitNone       Unit = iota
	UnitCelsius         // "°C"
	UnitFahrenheit      // "°F"
)

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case UnitCelsius:
		return "C"
	case UnitFahrenheit:
		return "F"
	}
	return "Unit(?)"
}

// Smiley is the state of the mood symbol.
type Smiley uint8

const (
	SmileyOff Smiley = iota
	SmileyHappy
	SmileySad
)

func (s Smiley) String() string {
	switch s {
	case SmileyOff:
		return "off"
	case SmileyHappy:
		return "happy"
	case SmileySad:
		return "sad"
	}
	return "Smiley(?)"
}

// Range of the big number, in tenths.
const (
	BigMax = 19995
	BigMin = -995

	// Values outside [bigPointMin, bigPointMax] lose their decimal digit.
	bigPointMax = 1995
	bigPointMin = -95
)

// Range of the small number.
const (
	SmallMax = 99
	SmallMin = -9
)

// SetBigNumber shows tenths/10 on the large digits, e.g. 215 shows "21.5".
//
// Values in [-95, 1995] keep one decimal digit. Other values up to [-995,
// 19995] are rounded half up to an integer, and anything beyond shows "Hi" or
// "Lo".
func (f *Frame) SetBigNumber(tenths int16, unit Unit) {
	d0, d1, d2, d3 := f.digit(bigHundreds), f.digit(bigTens), f.digit(bigOnes), f.digit(symbols)
	*d0, *d1, *d2 = 0, 0, 0

	*d3 &^= unitSymbolMask
	switch unit {
	case UnitCelsius:
		*d3 |= unitDegree
		*d2 |= unitC
	case UnitFahrenheit:
		*d3 |= unitDegree | unitF
	}

	n := int(tenths)
	switch {
	case n > BigMax:
		*d0 |= glyphBigH
		*d1 |= glyphBigI
		return
	case n < BigMin:
		*d0 |= glyphBigL
		*d1 |= glyphBigO
		return
	}

	integer := n > bigPointMax || n < bigPointMin
	if n < 0 {
		n = -n
		*d0 |= bigMinus
	}
	if integer {
		n = (n + 5) / 10
	} else {
		*d1 |= bigPoint
	}

	if n > 999 {
		*d0 |= bigThousand
	}
	if n > 99 {
		*d0 |= BigDigits[n/100%10]
	}
	if n > 9 {
		*d1 |= BigDigits[n/10%10]
	} else {
		*d1 |= BigDigits[0]
	}
	*d2 |= BigDigits[n%10]
}

// SetSmallNumber shows n on the small digits. Values beyond [-9, 99] show
// "Hi" or "Lo". The percent sign follows percent in every case.
func (f *Frame) SetSmallNumber(n int16, percent bool) {
	d4, d5 := f.digit(smallTens), f.digit(smallOnes)
	*d4 &= connectSym
	*d5 = 0

	switch {
	case n > SmallMax:
		*d4 |= glyphSmallH
		*d5 |= glyphSmallI
	case n < SmallMin:
		*d4 |= glyphSmallL
		*d5 |= glyphSmallO
	default:
		if n < 0 {
			n = -n
			*d4 |= smallMinus
		}
		if n > 9 {
			*d4 |= SmallDigits[n/10%10]
		}
		*d5 |= SmallDigits[n%10]
	}

	if percent {
		*d5 |= percentSym
	} else {
		*d5 &^= percentSym
	}
}

// SetConnected shows or hides the connectivity symbol.
func (f *Frame) SetConnected(on bool) {
	setBits(f.digit(smallTens), connectSym, on)
}

// SetBattery shows or hides the low battery symbol.
func (f *Frame) SetBattery(on bool) {
	setBits(f.digit(symbols), batterySym, on)
}

// SetSmiley sets the mood symbol.
func (f *Frame) SetSmiley(s Smiley) {
	d3 := f.digit(symbols)
	*d3 &^= smileyMask
	switch s {
	case SmileyHappy:
		*d3 |= smileyFace | smileyHappy
	case SmileySad:
		*d3 |= smileyFace | smileySad
	}
}

func setBits(b *byte, mask byte, on bool) {
	if on {
		*b |= mask
	} else {
		*b &^= mask
	}
}

// Preset screens.
var (
	// AllOnPattern lights every segment.
	AllOnPattern = [DigitCount]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	// OTAPattern shows "___" on the big digits and the connectivity symbol.
	OTAPattern = [DigitCount]byte{underscore, underscore, underscore, 0, connectSym, 0}
	// RebootPattern is shown while the device restarts.
	RebootPattern = AllOnPattern
	// BlinkPattern shows "__" on the small digits, the lower unit bar and the
	// connectivity symbol.
	BlinkPattern = [DigitCount]byte{0, 0, 0, underscore, underscore | connectSym, underscore}
)
