package charts

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultDayFormat  = "%b %d"
	DefaultYearFormat = "%b %d, %Y"
)

func MakeParseTime(format string) (func(string) (time.Time, error), error) {
	format, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	return func(str string) (time.Time, error) {
		return time.Parse(format, str)
	}, nil
}

// DateFormatter labels dates of a left to right pass over an axis. The year is
// only written for the first date of each new year. A formatter remembers the
// last year it has written so a new one is needed for every pass.
type DateFormatter struct {
	day  string
	year string

	last int
	seen bool
}

func NewDateFormatter(day, year string) (*DateFormatter, error) {
	d, err := parseFormat(day)
	if err != nil {
		return nil, err
	}
	y, err := parseFormat(year)
	if err != nil {
		return nil, err
	}
	f := DateFormatter{
		day:  d,
		year: y,
	}
	return &f, nil
}

func (f *DateFormatter) Format(t time.Time) string {
	if !f.seen || t.Year() != f.last {
		f.seen, f.last = true, t.Year()
		return t.Format(f.year)
	}
	return t.Format(f.day)
}

const percent = '%'

var specifiers = map[rune]string{
	'D': "01/02/06", // month/day/year
	'Y': "2006",     // year four digits
	'y': "06",       // year two digits
	'm': "01",       // month two digits
	'B': "January",  // full month name
	'b': "Jan",      // abreviate month name
	'h': "Jan",      // abreviate month name
	'd': "02",       // day of month
	'e': "_2",       // day of month space padded
	'j': "002",      // day of year
	'A': "Monday",   // full week day name
	'a': "Mon",      // abreviate week day name
	'H': "15",       // hours 00-23
	'I': "03",       // hours 00-12
	'M': "04",       // minute two digits
	'S': "05",       // second two digits
	'p': "PM",
	'T': "15:04:05",
	'F': "2006-01-02",
	'z': "-07:00",
	'Z': "Z07:00",
	'c': "Mon Jan 2 15:04:05 2006",
	'r': "03:04:05 PM",
	'R': "15:04",
	'%': "%",
	'n': "\n",
	't': "\t",
}

func parseFormat(str string) (string, error) {
	var (
		r = strings.NewReader(str)
		w strings.Builder
	)
	for r.Len() > 0 {
		x, _, _ := r.ReadRune()
		if x == utf8.RuneError {
			return "", fmt.Errorf("invalid character found in format string")
		}
		if x != percent {
			w.WriteRune(x)
			continue
		}
		if r.Len() == 0 {
			return "", fmt.Errorf("missing specifier at end of format %q", str)
		}
		x, _, _ = r.ReadRune()
		spec, ok := specifiers[x]
		if !ok {
			return "", fmt.Errorf("invalid specifier found %c", x)
		}
		w.WriteString(spec)
	}
	return w.String(), nil
}
