package bangla

// BanglaDate is the Bangla calendar date derived from a Gregorian date.
// It is always computed fresh and never persisted.
type BanglaDate struct {
	Day        int
	MonthIndex int
	Year       int
}

// Months of the Bangla year, starting at Boishakh.
var Months = []string{
	"Boishakh", "Jyaistha", "Asharh", "Shrabon", "Bhadro", "Ashwin",
	"Kartik", "Agrahayan", "Poush", "Magh", "Falgun", "Chaitra",
}

var MonthsBN = []string{
	"বৈশাখ", "জ্যৈষ্ঠ", "আষাঢ়", "শ্রাবণ", "ভাদ্র", "আশ্বিন",
	"কার্তিক", "অগ্রহায়ণ", "পৌষ", "মাঘ", "ফাল্গুন", "চৈত্র",
}

// GregorianMonthsBN are the Bengali names of the Gregorian months.
var GregorianMonthsBN = []string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// WeekdaysBN are the Bengali weekday names, Sunday first.
var WeekdaysBN = []string{"রবি", "সোম", "মঙ্গল", "বুধ", "বৃহস্পতি", "শুক্র", "শনি"}

// monthLengths is the fixed month table: five months of 31 days followed by
// seven of 30. The sum is 365; this deliberately approximates the lunisolar
// calendar rather than computing variable month lengths.
var monthLengths = []int{31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 30, 30}

// Month returns the transliterated month name.
func (d BanglaDate) Month() string {
	if d.MonthIndex < 0 || d.MonthIndex >= len(Months) {
		return ""
	}
	return Months[d.MonthIndex]
}

// MonthBN returns the Bengali-script month name.
func (d BanglaDate) MonthBN() string {
	if d.MonthIndex < 0 || d.MonthIndex >= len(MonthsBN) {
		return ""
	}
	return MonthsBN[d.MonthIndex]
}

// String renders the date as "D Month YEAR" in Bengali script, e.g.
// "১ বৈশাখ ১৪৩২".
func (d BanglaDate) String() string {
	return ToBengaliDigits(d.Day) + " " + d.MonthBN() + " " + ToBengaliDigits(d.Year)
}
