// Package segment encodes display content for the ZTH05 segment LCD.
//
// The ZTH05 controller receives an 11-byte frame on every write. The first 5
// bytes are a fixed command prefix, the remaining 6 "digit bytes" carry one bit
// per LCD segment:
//
//	         --0.4--         --1.4--            --2.4--      BAT
//	  |    |         |     |         |        |         |     3.5
//	  |   0.5       0.0   1.5       1.0      2.5       2.0
//	  |    |         |     |         |        |         |   ° 3.6
//	 0.3     --0.1--         --1.1--            --2.1--       ---- 3.6
//	  |    |         |     |         |        |         |  3.6|
//	  |   0.6       0.2   1.6       1.2      2.6       2.2    ---- 3.7
//	  |    |         |     |         |        |         |  3.6|
//	         --0.7--         --1.7--     *      --2.7--       ---- 2.3
//	                                    1.3
//
//	                                         --4.4--         --5.4--
//	                                        |       |       |       |
//	      3.0         3.0                  4.5     4.0     5.5     5.0
//	      / \         / \                   |       |       |       |
//	3.4(  \ /   3.1   \ /  )3.4              --4.1--         --5.1--
//	      3.1   / \   3.1                   |       |       |       |
//	            \_/                        4.6     4.2     5.6     5.2    %
//	            3.0                         |       |       |       |    5.3
//	                                         --4.7--         --5.7--
//
//	                                oo 4.3
//
// Several display elements share a digit byte, so every encoder only touches
// the bits of its own element. Example usage:
//
//	f := segment.NewFrame()
//	f.SetBigNumber(-50, segment.UnitCelsius) // "-5.0°C"
//	f.SetSmallNumber(42, true)               // "42%"
//	f.SetConnected(true)
//	f.SetSmiley(segment.SmileyHappy)
//	fmt.Print(f.Render())
package segment
