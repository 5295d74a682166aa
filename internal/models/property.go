package models

import "time"

type Property struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id" firestore:"-"`
	OwnerID     string `gorm:"type:varchar(36);not null;index" json:"ownerId" firestore:"ownerId"`
	Title       string `gorm:"type:text;not null" json:"title" firestore:"title"`
	Description string `gorm:"type:text" json:"description" firestore:"description"`

	// Filterable attributes
	PropertyType PropertyType `gorm:"type:varchar(20);not null;index" json:"propertyType" firestore:"propertyType"`
	Price        int          `gorm:"type:int;not null;index" json:"price" firestore:"price"` // smallest currency unit
	Country      string       `gorm:"type:varchar(2);not null;default:'IT';index" json:"country" firestore:"country"`
	City         string       `gorm:"type:varchar(100);not null;index" json:"city" firestore:"city"`
	Zone         string       `gorm:"type:varchar(100)" json:"zone,omitempty" firestore:"zone"`
	Address      string       `gorm:"type:text" json:"address,omitempty" firestore:"address"`
	Latitude     *float64     `gorm:"type:double" json:"latitude,omitempty" firestore:"latitude"`
	Longitude    *float64     `gorm:"type:double" json:"longitude,omitempty" firestore:"longitude"`
	SquareMeters *int         `gorm:"type:int" json:"squareMeters,omitempty" firestore:"squareMeters"`
	Bedrooms     int          `gorm:"type:int;default:1" json:"bedrooms" firestore:"bedrooms"`
	Bathrooms    int          `gorm:"type:int;default:1" json:"bathrooms" firestore:"bathrooms"`

	// Amenities: boolean columns plus the feature-tag array used by the
	// document store
	Features         []string `gorm:"serializer:json" json:"features" firestore:"features"`
	IsFurnished      bool     `gorm:"type:boolean;default:false" json:"isFurnished" firestore:"isFurnished"`
	AllowsPets       bool     `gorm:"type:boolean;default:false" json:"allowsPets" firestore:"allowsPets"`
	InternetIncluded bool     `gorm:"type:boolean;default:false" json:"internetIncluded" firestore:"internetIncluded"`

	// Listing state (soft delete)
	IsActive      bool       `gorm:"type:boolean;not null;default:true;index" json:"isActive" firestore:"isActive"`
	AvailableFrom *time.Time `gorm:"type:datetime" json:"availableFrom,omitempty" firestore:"availableFrom"`
	ExpiresAt     *time.Time `gorm:"type:datetime;index" json:"expiresAt,omitempty" firestore:"expiresAt"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_created_at,sort:desc" json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updatedAt" firestore:"updatedAt"`
}

// PropertyType is the fixed set of listing variants.
type PropertyType string

const (
	PropertyTypeSingleRoom PropertyType = "stanza_singola"
	PropertyTypeDoubleRoom PropertyType = "stanza_doppia"
	PropertyTypeStudio     PropertyType = "monolocale"
	PropertyTypeTwoRoom    PropertyType = "bilocale"
	PropertyTypeOther      PropertyType = "altro"
)

// IsValid reports whether the type is one of the fixed variants.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeSingleRoom, PropertyTypeDoubleRoom, PropertyTypeStudio,
		PropertyTypeTwoRoom, PropertyTypeOther:
		return true
	}
	return false
}

// Feature tags stored in the document-store features array. The three
// amenity booleans map onto these tags.
const (
	FeatureFurnished = "arredato"
	FeaturePets      = "animali_ammessi"
	FeatureInternet  = "wifi"
)

// TableName pins the relational table name.
func (Property) TableName() string {
	return "properties"
}

// HasFeature reports whether a feature tag is present in the features array.
func (p *Property) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// Furnished reconciles the boolean column with the feature tag: document
// records carry only the tag, relational rows only the flag.
func (p *Property) Furnished() bool {
	return p.IsFurnished || p.HasFeature(FeatureFurnished)
}

func (p *Property) PetsAllowed() bool {
	return p.AllowsPets || p.HasFeature(FeaturePets)
}

func (p *Property) HasInternet() bool {
	return p.InternetIncluded || p.HasFeature(FeatureInternet)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (p *Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Deactivate marks the listing inactive (logical deletion).
func (p *Property) Deactivate() {
	p.IsActive = false
}
