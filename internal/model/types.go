// Package model defines shared data structures.
package model

// Config defines keyer settings.
type Config struct {
	WPM        float64
	Color      string
	Key        string
	LeadingGap bool
	Watch      bool
	ConfigPath string
}
