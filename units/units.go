// Package units holds the rounding and temperature display rules.
package units

import (
	"fmt"
	"math"

	"github.com/Elephante152/habitat/models"
)

// Round rounds half up, so 20.5 becomes 21 and -2.5 becomes -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// CelsiusToFahrenheit converts a Celsius temperature
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a Fahrenheit temperature
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// FormatTemperature renders a stored Celsius value for display. With celsius
// unset the value is converted to Fahrenheit before rounding.
func FormatTemperature(stored float64, celsius bool) string {
	if celsius {
		return fmt.Sprintf("%d°C", int(Round(stored)))
	}
	return fmt.Sprintf("%d°F", int(Round(CelsiusToFahrenheit(stored))))
}

// Display formats temp, which was fetched in unit fetchedIn, in the
// preferred scale. Imperial values are taken back to Celsius first so a
// unit toggle never converts twice.
func Display(temp float64, fetchedIn models.UnitSystem, celsius bool) string {
	if fetchedIn == models.Imperial {
		if !celsius {
			return fmt.Sprintf("%d°F", int(Round(temp)))
		}
		temp = FahrenheitToCelsius(temp)
	}
	return FormatTemperature(temp, celsius)
}

// WindUnit is the wind speed unit the provider uses for a unit system
func WindUnit(unit models.UnitSystem) string {
	if unit == models.Imperial {
		return "mph"
	}
	return "m/s"
}
