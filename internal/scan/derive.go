package scan

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nexafs/internal/fileutil"
)

// angleMarker is the literal substring separating the angle portion of a
// measurement filename from the rest, e.g. "45deg_scan.txt".
const angleMarker = "deg"

var upper = cases.Upper(language.Und)

// EdgeLabel derives the absorption edge display label from an edge
// directory name: the first character uppercased plus "-K", so "carbon"
// becomes "C-K". All archived measurements are K-edge spectra, which is
// why the shell is fixed.
func EdgeLabel(dirName string) string {
	runes := []rune(dirName)
	if len(runes) == 0 {
		return ""
	}
	return upper.String(string(runes[0])) + "-K"
}

// ParseAngle derives the angle string from a measurement filename. The
// stem is split on the first occurrence of "deg" and the angle is the last
// two characters of the leading segment; a shorter segment is returned
// whole ("5deg.txt" yields "5"). Filenames without the marker fall back to
// the tail of the entire stem and report marked=false so callers can flag
// them.
func ParseAngle(fileName string) (angle string, marked bool) {
	stem := fileutil.Stem(fileName)
	segment, _, marked := strings.Cut(stem, angleMarker)
	return lastRunes(segment, 2), marked
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
