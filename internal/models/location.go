package models

// City is reference data managed by administrators.
type City struct {
	ID     string `json:"id" gorm:"primaryKey;size:64"`
	Name   string `json:"name" gorm:"not null"`
	NameKo string `json:"name_ko"`
}

// Apartment is a residential complex inside a city.
type Apartment struct {
	ID        string  `json:"id" gorm:"type:uuid;primaryKey"`
	CityID    string  `json:"city_id" gorm:"size:64;not null;index"`
	City      City    `json:"-" gorm:"foreignKey:CityID"`
	Name      string  `json:"name" gorm:"not null"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude" gorm:"type:decimal(10,8);not null"`
	Longitude float64 `json:"longitude" gorm:"type:decimal(11,8);not null"`
}

// NearbyApartment is an apartment with its distance from the search origin.
type NearbyApartment struct {
	Apartment
	DistanceKm float64 `json:"distance_km"`
}
