package entities

// EntityKind identifies a searchable entity type
type EntityKind string

const (
	KindObject         EntityKind = "object"
	KindCountry        EntityKind = "country"
	KindRegion         EntityKind = "region"
	KindCity           EntityKind = "city"
	KindMedicalProfile EntityKind = "medical_profile"
	KindDisease        EntityKind = "disease"
	KindTherapy        EntityKind = "therapy"
	KindService        EntityKind = "service"
	KindMood           EntityKind = "mood"
)

// SearchableKinds lists the entity types covered by the full-text index,
// in the order the aggregator fans them out
var SearchableKinds = []EntityKind{
	KindObject,
	KindCountry,
	KindRegion,
	KindCity,
	KindMedicalProfile,
	KindDisease,
	KindTherapy,
}

// MedicalProfile represents a treatment direction (e.g. cardiology)
type MedicalProfile struct {
	ID            int64  `json:"id" db:"id"`
	Alias         string `json:"alias" db:"alias"`
	NameRU        string `json:"name_ru" db:"name_ru"`
	NameEN        string `json:"name_en" db:"name_en"`
	DescriptionRU string `json:"description_ru,omitempty" db:"description_ru"`
	DescriptionEN string `json:"description_en,omitempty" db:"description_en"`
}

// Disease represents a treatable disease associated with medical profiles
type Disease struct {
	ID            int64  `json:"id" db:"id"`
	Alias         string `json:"alias" db:"alias"`
	NameRU        string `json:"name_ru" db:"name_ru"`
	NameEN        string `json:"name_en" db:"name_en"`
	DescriptionRU string `json:"description_ru,omitempty" db:"description_ru"`
	DescriptionEN string `json:"description_en,omitempty" db:"description_en"`
}

// Therapy represents a treatment method
type Therapy struct {
	ID            int64  `json:"id" db:"id"`
	Alias         string `json:"alias" db:"alias"`
	NameRU        string `json:"name_ru" db:"name_ru"`
	NameEN        string `json:"name_en" db:"name_en"`
	DescriptionRU string `json:"description_ru,omitempty" db:"description_ru"`
	DescriptionEN string `json:"description_en,omitempty" db:"description_en"`
}

// Service represents an amenity or service offered by an object
type Service struct {
	ID     int64  `json:"id" db:"id"`
	Alias  string `json:"alias" db:"alias"`
	NameRU string `json:"name_ru" db:"name_ru"`
	NameEN string `json:"name_en" db:"name_en"`
}

// Mood represents a vacation mood tag (active, family, wellness, ...)
type Mood struct {
	ID     int64  `json:"id" db:"id"`
	Alias  string `json:"alias" db:"alias"`
	NameRU string `json:"name_ru" db:"name_ru"`
	NameEN string `json:"name_en" db:"name_en"`
}
