package entities

// Country represents a destination country
type Country struct {
	ID       int64     `json:"id" db:"id"`
	Alias    string    `json:"alias" db:"alias"`
	NameRU   string    `json:"name_ru" db:"name_ru"`
	NameEN   string    `json:"name_en" db:"name_en"`
	Location *Location `json:"location,omitempty" db:"-"`
}

// Region represents a region within a country
type Region struct {
	ID        int64     `json:"id" db:"id"`
	CountryID int64     `json:"country_id" db:"country_id"`
	Alias     string    `json:"alias" db:"alias"`
	NameRU    string    `json:"name_ru" db:"name_ru"`
	NameEN    string    `json:"name_en" db:"name_en"`
	Location  *Location `json:"location,omitempty" db:"-"`
}

// City represents a city within a region
type City struct {
	ID       int64     `json:"id" db:"id"`
	RegionID int64     `json:"region_id" db:"region_id"`
	Alias    string    `json:"alias" db:"alias"`
	NameRU   string    `json:"name_ru" db:"name_ru"`
	NameEN   string    `json:"name_en" db:"name_en"`
	Location *Location `json:"location,omitempty" db:"-"`
}
