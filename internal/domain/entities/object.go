package entities

import "time"

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Object represents a bookable medical-tourism facility
type Object struct {
	ID            int64      `json:"id" db:"id"`
	Alias         string     `json:"alias" db:"alias"`
	NameRU        string     `json:"name_ru" db:"name_ru"`
	NameEN        string     `json:"name_en" db:"name_en"`
	DescriptionRU string     `json:"description_ru,omitempty" db:"description_ru"`
	DescriptionEN string     `json:"description_en,omitempty" db:"description_en"`
	Stars         int        `json:"stars" db:"stars"`
	Discount      bool       `json:"discount" db:"discount"`
	OnMainPage    bool       `json:"on_main_page" db:"on_main_page"`
	Visible       bool       `json:"visible" db:"visible"`
	Rating        float64    `json:"rating" db:"rating"`
	CountryID     int64      `json:"country_id" db:"country_id"`
	RegionID      int64      `json:"region_id" db:"region_id"`
	CityID        int64      `json:"city_id" db:"city_id"`
	Location      *Location  `json:"location,omitempty" db:"-"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`
}

// Name returns the localized display name
func (o *Object) Name(locale Locale) string {
	if locale == LocaleEN {
		return o.NameEN
	}
	return o.NameRU
}

// Description returns the localized description
func (o *Object) Description(locale Locale) string {
	if locale == LocaleEN {
		return o.DescriptionEN
	}
	return o.DescriptionRU
}
