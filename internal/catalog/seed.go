package catalog

import "github.com/synergyhealth/hospital-discovery/internal/domain/entities"

// SeedHospitals returns the bundled catalog used by cmd/seed and as the
// last-resort serving catalog when no database is configured.
func SeedHospitals() []entities.Hospital {
	return []entities.Hospital{
		{
			ID:              1,
			Name:            "Manipal Hospital",
			Location:        "Yeshwanthpur, Bengaluru",
			Distance:        12.5,
			WaitTime:        90,
			AvailableOrgans: []string{entities.OrganKidney, entities.OrganLiver},
			EstimatedCost:   75000,
		},
		{
			ID:              2,
			Name:            "Kauvery Hospital",
			Location:        "Electronic City, Bengaluru",
			Distance:        25.1,
			WaitTime:        120,
			AvailableOrgans: []string{entities.OrganHeart, entities.OrganLung},
			EstimatedCost:   150000,
		},
		{
			ID:              3,
			Name:            "Fortis Hospital",
			Location:        "Bannerghatta Road, Bengaluru",
			Distance:        8.2,
			WaitTime:        45,
			AvailableOrgans: []string{entities.OrganKidney, entities.OrganPancreas, entities.OrganLiver},
			EstimatedCost:   62000,
		},
		{
			ID:              4,
			Name:            "Apollo Hospitals",
			Location:        "Bannerghatta, Bengaluru",
			Distance:        10.8,
			WaitTime:        150,
			AvailableOrgans: []string{entities.OrganLung},
			EstimatedCost:   125000,
		},
		{
			ID:              5,
			Name:            "Narayana Health City",
			Location:        "Bommasandra, Bengaluru",
			Distance:        18.4,
			WaitTime:        60,
			AvailableOrgans: []string{entities.OrganHeart, entities.OrganKidney, entities.OrganCornea},
			EstimatedCost:   88000,
		},
		{
			ID:              6,
			Name:            "Aster CMI Hospital",
			Location:        "Hebbal, Bengaluru",
			Distance:        15.9,
			WaitTime:        75,
			AvailableOrgans: []string{entities.OrganLiver, entities.OrganPancreas},
			EstimatedCost:   98000,
		},
	}
}
