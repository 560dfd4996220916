/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strconv"
)

const sizeUnits = "kMGTPE"

// humanReadableSize formats a byte count with SI prefixes, e.g. "1.5 kB".
func humanReadableSize(bytes int64) string {
	if bytes < 1000 {
		return strconv.FormatInt(bytes, 10) + " B"
	}

	value := float64(bytes) / 1000
	exp := 0
	for value >= 1000 && exp < len(sizeUnits)-1 {
		value /= 1000
		exp++
	}

	return strconv.FormatFloat(value, 'f', 1, 64) + " " + string(sizeUnits[exp]) + "B"
}
