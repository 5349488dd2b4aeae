// Package solar computes sunrise and sunset times using the NOAA
// solar-position approximation.
package solar

import (
	"math"
	"time"
)

// Fallback boundaries used when the sun never rises or never sets at the
// given latitude and date (polar day/night).
const (
	FallbackSunriseMinute = 6 * 60  // 06:00
	FallbackSunsetMinute  = 18 * 60 // 18:00
)

const minutesPerDay = 24 * 60

// Times holds sunrise and sunset as local wall-clock times on the
// queried date.
type Times struct {
	Sunrise time.Time
	Sunset  time.Time
	// Polar is true when the fallback boundaries were used because the
	// hour-angle ratio left [-1, 1].
	Polar bool
}

// Calculate returns sunrise and sunset local times for the given
// coordinates and date. The date's own location determines the timezone
// offset applied to the UTC-relative result.
func Calculate(latitude, longitude float64, date time.Time) Times {
	sunriseMin, sunsetMin, polar := minutes(latitude, longitude, date)
	return Times{
		Sunrise: atMinute(date, sunriseMin),
		Sunset:  atMinute(date, sunsetMin),
		Polar:   polar,
	}
}

// minutes returns sunrise and sunset as local minute-of-day values.
func minutes(latitude, longitude float64, date time.Time) (sunrise, sunset int, polar bool) {
	const zenith = 90.833 // official sunrise/sunset, degrees

	latRad := latitude * math.Pi / 180

	// Fractional year in radians, including the time-of-day term.
	doy := float64(date.YearDay())
	gamma := 2 * math.Pi / 365 * (doy - 1 + (float64(date.Hour())-12)/24)

	// Equation of time (minutes) and solar declination (radians).
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) -
		0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) -
		0.040849*math.Sin(2*gamma))
	decl := 0.006918 -
		0.399912*math.Cos(gamma) +
		0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) +
		0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) +
		0.00148*math.Sin(3*gamma)

	cosHA := math.Cos(zenith*math.Pi/180)/(math.Cos(latRad)*math.Cos(decl)) -
		math.Tan(latRad)*math.Tan(decl)
	if cosHA < -1 || cosHA > 1 {
		// Polar day or night: no real sunrise/sunset today.
		return FallbackSunriseMinute, FallbackSunsetMinute, true
	}

	haDeg := math.Acos(cosHA) * 180 / math.Pi

	// UTC minutes from midnight.
	sunriseUTC := 720 - 4*(longitude+haDeg) - eqTime
	sunsetUTC := 720 - 4*(longitude-haDeg) - eqTime

	_, tzOffsetSec := date.Zone()
	tzOffsetMin := float64(tzOffsetSec) / 60

	sunrise = wrapMinute(int(math.Round(sunriseUTC + tzOffsetMin)))
	sunset = wrapMinute(int(math.Round(sunsetUTC + tzOffsetMin)))
	return sunrise, sunset, false
}

func wrapMinute(m int) int {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return m
}

func atMinute(date time.Time, minuteOfDay int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		minuteOfDay/60, minuteOfDay%60, 0, 0, date.Location())
}
