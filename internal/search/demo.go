package search

import (
	"time"

	"inandout-portal/internal/models"
)

// DemoProperties returns the fixed sample dataset shown when the document
// store yields no real listings. An empty marketplace looks broken, so the
// HTTP layer substitutes these in document mode; the query layer itself
// still reports the true empty set.
func DemoProperties() []models.Property {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Property{
		{
			ID:           "demo-001",
			OwnerID:      "demo-owner",
			Title:        "Stanza singola luminosa a Milano",
			Description:  "Affitto stanza singola in zona Navigli, spese escluse.",
			PropertyType: models.PropertyTypeSingleRoom,
			Price:        55000,
			Country:      "IT",
			City:         "Milano",
			Zone:         "Navigli",
			Latitude:     ptrFloat(45.4502),
			Longitude:    ptrFloat(9.1711),
			SquareMeters: ptrInt(16),
			Features:     []string{models.FeatureFurnished, models.FeatureInternet},
			IsFurnished:  true, InternetIncluded: true,
			IsActive:  true,
			CreatedAt: created,
		},
		{
			ID:           "demo-002",
			OwnerID:      "demo-owner",
			Title:        "Monolocale arredato a Bologna",
			Description:  "Monolocale in affitto vicino all'università, animali ammessi.",
			PropertyType: models.PropertyTypeStudio,
			Price:        72000,
			Country:      "IT",
			City:         "Bologna",
			Zone:         "Centro",
			Latitude:     ptrFloat(44.4949),
			Longitude:    ptrFloat(11.3426),
			SquareMeters: ptrInt(30),
			Features:     []string{models.FeatureFurnished, models.FeaturePets},
			IsFurnished:  true, AllowsPets: true,
			IsActive:  true,
			CreatedAt: created,
		},
		{
			ID:           "demo-003",
			OwnerID:      "demo-owner",
			Title:        "Bilocale con balcone a Roma",
			Description:  "Proponiamo in affitto questo bilocale situato a Roma, zona San Giovanni.",
			PropertyType: models.PropertyTypeTwoRoom,
			Price:        95000,
			Country:      "IT",
			City:         "Roma",
			Zone:         "San Giovanni",
			Latitude:     ptrFloat(41.8860),
			Longitude:    ptrFloat(12.5184),
			SquareMeters: ptrInt(55),
			Features:     []string{models.FeatureInternet},
			InternetIncluded: true,
			IsActive:         true,
			CreatedAt:        created,
		},
		{
			ID:           "demo-004",
			OwnerID:      "demo-owner",
			Title:        "Stanza doppia a Torino",
			Description:  "Stanza doppia in appartamento condiviso, canone mensile spese incluse.",
			PropertyType: models.PropertyTypeDoubleRoom,
			Price:        38000,
			Country:      "IT",
			City:         "Torino",
			Zone:         "San Salvario",
			Latitude:     ptrFloat(45.0541),
			Longitude:    ptrFloat(7.6823),
			SquareMeters: ptrInt(20),
			Features:     []string{},
			IsActive:     true,
			CreatedAt:    created,
		},
		{
			ID:           "demo-005",
			OwnerID:      "demo-owner",
			Title:        "Monolocale a Valencia",
			Description:  "Estudio en alquiler cerca de la playa, totalmente amueblado.",
			PropertyType: models.PropertyTypeStudio,
			Price:        60000,
			Country:      "ES",
			City:         "Valencia",
			Zone:         "El Cabanyal",
			Latitude:     ptrFloat(39.4699),
			Longitude:    ptrFloat(-0.3763),
			SquareMeters: ptrInt(28),
			Features:     []string{models.FeatureFurnished, models.FeatureInternet, models.FeaturePets},
			IsFurnished:  true, AllowsPets: true, InternetIncluded: true,
			IsActive:  true,
			CreatedAt: created,
		},
	}
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
