// Package types defines the weather reading value object and its
// persisted representation.
package types

import "time"

// WindDirections is the 8-point compass rose in circular order. The
// generator walks this ring one step at a time.
var WindDirections = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WeatherCondition is the categorical weather state reported with each
// reading.
type WeatherCondition string

const (
	Clear        WeatherCondition = "Clear"
	PartlyCloudy WeatherCondition = "Partly Cloudy"
	Cloudy       WeatherCondition = "Cloudy"
	Overcast     WeatherCondition = "Overcast"
	LightRain    WeatherCondition = "Light Rain"
	Rain         WeatherCondition = "Rain"
	Thunderstorm WeatherCondition = "Thunderstorm"
	Fog          WeatherCondition = "Fog"
)

// Reading is a single generated weather observation. Values are rounded
// to two decimals. A Reading is immutable once returned by the generator;
// the generator keeps no reference to past readings.
type Reading struct {
	Temperature      float64 // °C
	Humidity         float64 // %, within [20,100]
	Pressure         float64 // hPa
	WindSpeed        float64 // m/s, within [0,25]
	WindDirection    string
	WeatherCondition WeatherCondition
}

// WeatherRecord is a Reading as stored in the weather_data table. ID and
// Timestamp are assigned by the database on insert; record creation time
// is authoritative, not generation time.
type WeatherRecord struct {
	ID               int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Timestamp        time.Time `gorm:"column:timestamp;default:now()"`
	Temperature      float64   `gorm:"column:temperature"`
	Humidity         float64   `gorm:"column:humidity"`
	Pressure         float64   `gorm:"column:pressure"`
	WindSpeed        float64   `gorm:"column:wind_speed"`
	WindDirection    string    `gorm:"column:wind_direction"`
	WeatherCondition string    `gorm:"column:weather_condition"`
}

// TableName implements the GORM Tabler interface for the WeatherRecord struct
func (WeatherRecord) TableName() string {
	return "weather_data"
}
