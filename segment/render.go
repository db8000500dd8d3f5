package segment

import "strings"

// Segment positions shared by every digit.
const (
	segUR  = 0
	segMid = 1
	segLR  = 2
	segTop = 4
	segUL  = 5
	segLL  = 6
	segBot = 7
)

func lit(b byte, seg uint) bool {
	return b&(1<<seg) != 0
}

func pick(on bool, s string) string {
	if on {
		return s
	}
	return strings.Repeat(" ", len(s))
}

// digitRows draws one digit as 5 rows of 4 columns.
func digitRows(b byte) [5]string {
	return [5]string{
		" " + pick(lit(b, segTop), "-") + "  ",
		pick(lit(b, segUL), "|") + " " + pick(lit(b, segUR), "|") + " ",
		" " + pick(lit(b, segMid), "-") + "  ",
		pick(lit(b, segLL), "|") + " " + pick(lit(b, segLR), "|") + " ",
		" " + pick(lit(b, segBot), "-") + "  ",
	}
}

// Render draws the lit segments of the frame as ASCII art, for logs and
// simulated displays.
func (f *Frame) Render() string {
	d := f.Digits()
	var rows [5]strings.Builder

	// Big number: leading "1", three digits, decimal point before the last.
	one := lit(d[bigHundreds], 3)
	for i := range rows {
		rows[i].WriteString(pick(one && (i == 1 || i == 3), "|") + " ")
	}
	for n := bigHundreds; n <= bigOnes; n++ {
		r := digitRows(d[n])
		for i := range rows {
			rows[i].WriteString(r[i])
		}
		if n == bigTens {
			rows[4].WriteString(pick(d[bigTens]&bigPoint != 0, "."))
			for i := 0; i < 4; i++ {
				rows[i].WriteByte(' ')
			}
		}
	}

	deg := d[symbols]&unitDegree != 0
	rows[0].WriteString(pick(d[symbols]&batterySym != 0, "BAT"))
	rows[1].WriteString(pick(deg, "o  "))
	switch {
	case deg && d[symbols]&unitF != 0:
		rows[2].WriteString("F  ")
	case deg && d[bigOnes]&unitC != 0:
		rows[2].WriteString("C  ")
	default:
		rows[2].WriteString("   ")
	}
	rows[3].WriteString("   ")
	rows[4].WriteString("   ")

	var b strings.Builder
	for i := range rows {
		b.WriteString(strings.TrimRight(rows[i].String(), " "))
		b.WriteByte('\n')
	}

	// Second line: mood, small number, percent and connectivity.
	var small [5]strings.Builder
	mood := "    "
	if d[symbols]&smileyFace != 0 {
		switch {
		case d[symbols]&smileyHappy != 0:
			mood = " :) "
		case d[symbols]&smileySad != 0:
			mood = " :( "
		default:
			mood = " () "
		}
	}
	for i := range small {
		if i == 2 {
			small[i].WriteString(mood)
		} else {
			small[i].WriteString("    ")
		}
	}
	for n := smallTens; n <= smallOnes; n++ {
		r := digitRows(d[n])
		for i := range small {
			small[i].WriteString(r[i])
		}
	}
	small[3].WriteString(pick(d[smallOnes]&percentSym != 0, "%"))
	small[4].WriteString(pick(d[smallTens]&connectSym != 0, "CON"))
	for i := range small {
		b.WriteString(strings.TrimRight(small[i].String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
