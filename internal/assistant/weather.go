package assistant

import (
	"fmt"
	"math"
	"strconv"
)

// Weather is the snapshot returned by the weather endpoint.
type Weather struct {
	Conditions []Condition `json:"weather" yaml:"weather"`
	Main       Readings    `json:"main" yaml:"main"`
	Wind       Wind        `json:"wind" yaml:"wind"`
	Name       string      `json:"name" yaml:"name"`
}

type Condition struct {
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

type Readings struct {
	Temp      float64 `json:"temp" yaml:"temp"`
	FeelsLike float64 `json:"feels_like" yaml:"feels_like"`
	Humidity  float64 `json:"humidity" yaml:"humidity"`
	Pressure  float64 `json:"pressure" yaml:"pressure"`
}

type Wind struct {
	Speed float64 `json:"speed" yaml:"speed"`
}

// Condition returns the first reported condition, if any.
func (w Weather) Condition() (Condition, bool) {
	if len(w.Conditions) == 0 {
		return Condition{}, false
	}
	return w.Conditions[0], true
}

func (w Weather) Description() string {
	c, _ := w.Condition()
	return c.Description
}

func (w Weather) Icon() string {
	c, _ := w.Condition()
	return c.Icon
}

// Temperature formats the temperature rounded to whole degrees, e.g. "30°C".
func (w Weather) Temperature() string {
	return celsius(w.Main.Temp)
}

func (w Weather) FeelsLike() string {
	return celsius(w.Main.FeelsLike)
}

func (w Weather) Humidity() string {
	return formatNumber(w.Main.Humidity) + "%"
}

func (w Weather) Pressure() string {
	return formatNumber(w.Main.Pressure) + " hPa"
}

func (w Weather) WindSpeed() string {
	return formatNumber(w.Wind.Speed) + " m/s"
}

// celsius rounds half up, so 30.5 becomes 31 and -2.5 becomes -2.
func celsius(v float64) string {
	return fmt.Sprintf("%d°C", int(math.Floor(v+0.5)))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
