// Package zodiac maps calendar dates to Western tropical zodiac signs and
// produces the daily horoscope content for each sign.
package zodiac

import "time"

// Sign is one of the 12 fixed zodiac labels.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists all labels in canonical zodiac order, starting at Aries.
var Signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// signRange is a closed (month, day) interval. Capricorn wraps the year
// boundary and is handled separately in SignFor.
type signRange struct {
	sign       Sign
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

// Western tropical date ranges. Contiguous and exhaustive: every valid
// calendar date falls in exactly one range.
var signRanges = []signRange{
	{Aries, time.March, 21, time.April, 19},
	{Taurus, time.April, 20, time.May, 20},
	{Gemini, time.May, 21, time.June, 20},
	{Cancer, time.June, 21, time.July, 22},
	{Leo, time.July, 23, time.August, 22},
	{Virgo, time.August, 23, time.September, 22},
	{Libra, time.September, 23, time.October, 22},
	{Scorpio, time.October, 23, time.November, 21},
	{Sagittarius, time.November, 22, time.December, 21},
	{Aquarius, time.January, 20, time.February, 18},
	{Pisces, time.February, 19, time.March, 20},
}

// SignFor returns the zodiac sign for a (month, day) pair. The caller is
// responsible for rejecting impossible calendar dates before calling; any
// date a valid time.Time can carry classifies to exactly one sign.
func SignFor(month time.Month, day int) Sign {
	for _, r := range signRanges {
		if month == r.startMonth && day >= r.startDay {
			return r.sign
		}
		if month == r.endMonth && day <= r.endDay {
			return r.sign
		}
	}
	// Dec 22 .. Jan 19 is the only interval not covered above.
	return Capricorn
}

// SignForDate classifies a full timestamp by its calendar month and day.
func SignForDate(t time.Time) Sign {
	return SignFor(t.Month(), t.Day())
}

// Valid reports whether s is one of the 12 recognized labels.
func (s Sign) Valid() bool {
	for _, known := range Signs {
		if s == known {
			return true
		}
	}
	return false
}

func (s Sign) String() string {
	return string(s)
}
