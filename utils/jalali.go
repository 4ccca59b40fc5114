package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a display (Jalali) date cannot be parsed
var ErrInvalidDateFormat = errors.New("invalid date format")

// JalaliDate is a date in the Solar Hijri calendar
type JalaliDate struct {
	Year  int
	Month int
	Day   int
}

func (d JalaliDate) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Years where the 33-year leap cycle shifts (Borkowski).
var jalaliBreaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

const (
	minJalaliYear = -61
	maxJalaliYear = 3177
)

var displayDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// ToDisplay renders a Gregorian date as a Jalali YYYY/MM/DD string
func ToDisplay(t time.Time) string {
	return GregorianToJalali(t).String()
}

// FromDisplay parses a Jalali Y/M/D string and returns the Gregorian date at UTC midnight
func FromDisplay(s string) (time.Time, error) {
	jd, err := ParseJalali(s)
	if err != nil {
		return time.Time{}, err
	}
	return JalaliToGregorian(jd), nil
}

// ParseJalali parses and validates a Jalali Y/M/D string
func ParseJalali(s string) (JalaliDate, error) {
	s = strings.TrimSpace(displayDigits.Replace(s))
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return JalaliDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	var nums [3]int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return JalaliDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return JalaliDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return JalaliDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
		}
		nums[i] = n
	}

	jd := JalaliDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if jd.Year < 1 || jd.Year > maxJalaliYear {
		return JalaliDate{}, fmt.Errorf("%w: year out of range", ErrInvalidDateFormat)
	}
	if jd.Month < 1 || jd.Month > 12 {
		return JalaliDate{}, fmt.Errorf("%w: month out of range", ErrInvalidDateFormat)
	}
	if jd.Day < 1 || jd.Day > JalaliMonthLength(jd.Year, jd.Month) {
		return JalaliDate{}, fmt.Errorf("%w: day out of range", ErrInvalidDateFormat)
	}
	return jd, nil
}

// IsJalaliLeapYear reports whether Esfand has 30 days in the given year
func IsJalaliLeapYear(jy int) bool {
	leap, _, _ := jalCal(jy)
	return leap == 0
}

// JalaliMonthLength returns the number of days in a Jalali month
func JalaliMonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsJalaliLeapYear(jy):
		return 30
	default:
		return 29
	}
}

// GregorianToJalali converts the calendar date of t (in its own location) to Jalali
func GregorianToJalali(t time.Time) JalaliDate {
	return dayNumberToJalali(gregorianToDayNumber(t.Year(), int(t.Month()), t.Day()))
}

// JalaliToGregorian converts a Jalali date to the Gregorian date at UTC midnight
func JalaliToGregorian(jd JalaliDate) time.Time {
	gy, gm, gd := dayNumberToGregorian(jalaliToDayNumber(jd.Year, jd.Month, jd.Day))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// jalCal returns the leap status (0 means leap), the matching Gregorian year and
// the March day on which Farvardin 1 falls.
func jalCal(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := jalaliBreaks[0]
	jump := 0

	if jy < minJalaliYear || jy > maxJalaliYear {
		return -1, gy, 0
	}

	for i := 1; i < len(jalaliBreaks); i++ {
		jm := jalaliBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

func jalaliToDayNumber(jy, jm, jd int) int {
	_, gy, march := jalCal(jy)
	return gregorianToDayNumber(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func dayNumberToJalali(jdn int) JalaliDate {
	gy, _, _ := dayNumberToGregorian(jdn)
	jy := gy - 621
	leap, _, march := jalCal(jy)
	k := jdn - gregorianToDayNumber(gy, 3, march)

	if k >= 0 {
		if k <= 185 {
			return JalaliDate{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return JalaliDate{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}

// gregorianToDayNumber returns the Julian Day Number of a Gregorian date
func gregorianToDayNumber(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func dayNumberToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
