package date

import "golang.org/x/text/language"

// displayLayouts are the short display layouts per supported locale.
// The first entry is the fallback when nothing matches.
var displayLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "Jan 2, 2006"},
	{language.BritishEnglish, "2 Jan 2006"},
	{language.French, "02/01/2006"},
	{language.German, "02.01.2006"},
	{language.Spanish, "02/01/2006"},
	{language.Italian, "02/01/2006"},
	{language.Dutch, "02-01-2006"},
	{language.Japanese, "2006/01/02"},
	{language.Chinese, "2006/01/02"},
	{language.Korean, "2006. 01. 02."},
}

var displayMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(displayLayouts))
	for i, l := range displayLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DisplayLayout returns the time layout used to display a day to a reader of
// the given BCP 47 locale (e.g. "en-US", "fr-FR"). Empty or unknown locales
// get the American English layout.
func DisplayLayout(locale string) string {
	if locale == "" {
		return displayLayouts[0].layout
	}
	_, i := language.MatchStrings(displayMatcher, locale)
	return displayLayouts[i].layout
}

// Display formats d for a reader of the given locale.
func (d Date) Display(locale string) string { return d.Format(DisplayLayout(locale)) }
