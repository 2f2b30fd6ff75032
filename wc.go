// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package wc

// Count returns the line, word, byte and character counts of p using the
// Backend returned by Detect. The result is identical for every Backend.
//
// Count never fails: invalid UTF-8 and incomplete sequences at the end of p
// are counted as bytes but not as characters.
func Count(p []byte, locale Locale) Counts {
	return Detect().Count(p, locale)
}
