package fat16

import "time"

// ParseDate decodes a FAT directory entry date stamp: a 16-bit field
// relative to the MS-DOS epoch of 1980-01-01 (bit 0 is the LSB):
//
//	Bits 0-4:  day of month, 1-31
//	Bits 5-8:  month of year, 1 = January, 1-12
//	Bits 9-15: years since 1980, 0-127 (1980-2107)
//
// Day or month of 0 is unspecified by the FAT spec; ParseDate returns
// the zero time.Time in that case, so callers can test IsZero.
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := input & 0x1E0 >> 5
	year := input & 0xFE00 >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}
	return time.Date(1980+int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a FAT directory entry time stamp: a 16-bit field
// with 2-second granularity:
//
//	Bits 0-4:  2-second count, 0-29 (0-58 seconds)
//	Bits 5-10: minutes, 0-59
//	Bits 11-15: hours, 0-23
//
// The returned time.Time always carries the date January 1, year 1, so
// a midnight stamp (all zero bits) is indistinguishable from "no time
// recorded" via IsZero. A time field whose out-of-range hours, minutes
// or seconds would carry past 23:59:59 clamps to 23:59:59 rather than
// overflowing into day 2; out-of-range minutes or seconds that stay
// within the day carry into the next minute or hour.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := input & 0x7E0 >> 5
	hours := input & 0xF800 >> 11

	t := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)
	if t.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}
	return t
}
