package market

import "github.com/iipratte/stuber/internal/models"

// Seed data mirroring the campus pilot dataset. Locations and drivers are
// static reference data; rides are the initial marketplace contents.

func DefaultLocations() []models.Location {
	return []models.Location{
		{ID: "loc-1", Name: "The Village", Category: models.LocationResidential},
		{ID: "loc-2", Name: "RB Parking Lot", Category: models.LocationCampus},
		{ID: "loc-3", Name: "Liberty Square", Category: models.LocationResidential},
		{ID: "loc-4", Name: "Tanner Building", Category: models.LocationCampus},
		{ID: "loc-5", Name: "Campus Plaza", Category: models.LocationCampus},
		{ID: "loc-6", Name: "Marriott Center", Category: models.LocationCampus},
		{ID: "loc-7", Name: "Life Science Building", Category: models.LocationCampus},
		{ID: "loc-8", Name: "Glenwood", Category: models.LocationResidential},
		{ID: "loc-9", Name: "Old Academy", Category: models.LocationCampus},
		{ID: "loc-10", Name: "Heritage Halls", Category: models.LocationResidential},
		{ID: "loc-11", Name: "LaVell Edwards Stadium", Category: models.LocationCampus},
		{ID: "loc-12", Name: "Wyview Park", Category: models.LocationResidential},
		{ID: "loc-13", Name: "Helaman Halls", Category: models.LocationResidential},
		{ID: "loc-14", Name: "Wilkinson Center", Category: models.LocationCampus},
	}
}

func DefaultDrivers() []models.Driver {
	return []models.Driver{
		{ID: "d-1", Name: "Alex Martinez", Handle: "@alexm", Rating: 4.9, TotalRides: 142, Verified: true,
			Vehicle: models.Vehicle{Year: 2023, Make: "Honda", Model: "Civic", Color: "Silver", LicensePlate: "BYU-3291"}},
		{ID: "d-2", Name: "Sarah Kim", Handle: "@sarahk", Rating: 4.8, TotalRides: 98, Verified: true,
			Vehicle: models.Vehicle{Year: 2022, Make: "Toyota", Model: "Camry", Color: "White", LicensePlate: "UTH-7714"}},
		{ID: "d-3", Name: "James Lewis", Handle: "@jamesl", Rating: 5.0, TotalRides: 215, Verified: true,
			Vehicle: models.Vehicle{Year: 2024, Make: "Tesla", Model: "Model 3", Color: "Black", LicensePlate: "EV-04821"}},
		{ID: "d-4", Name: "Emily Reyes", Handle: "@emilyr", Rating: 4.7, TotalRides: 63, Verified: true,
			Vehicle: models.Vehicle{Year: 2021, Make: "Hyundai", Model: "Sonata", Color: "Blue", LicensePlate: "PRV-5580"}},
		{ID: "d-5", Name: "David Wang", Handle: "@davidw", Rating: 4.6, TotalRides: 47, Verified: true,
			Vehicle: models.Vehicle{Year: 2023, Make: "Mazda", Model: "CX-5", Color: "Red", LicensePlate: "UTH-9023"}},
		{ID: "d-6", Name: "Rachel Torres", Handle: "@rachelt", Rating: 4.9, TotalRides: 180, Verified: true,
			Vehicle: models.Vehicle{Year: 2022, Make: "Subaru", Model: "Outback", Color: "Green", LicensePlate: "MTN-3347"}},
		{ID: "d-7", Name: "Chris Bennett", Handle: "@chrisb", Rating: 4.5, TotalRides: 31, Verified: false,
			Vehicle: models.Vehicle{Year: 2020, Make: "Ford", Model: "Focus", Color: "Gray", LicensePlate: "BYU-1109"}},
	}
}

func DefaultRides() []models.RideOffer {
	return []models.RideOffer{
		{ID: 1, DriverID: "d-1", FromLocationID: "loc-1", ToLocationID: "loc-2", DepartureTime: "10:00 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 3},
		{ID: 2, DriverID: "d-2", FromLocationID: "loc-3", ToLocationID: "loc-4", DepartureTime: "10:15 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 2},
		{ID: 3, DriverID: "d-3", FromLocationID: "loc-5", ToLocationID: "loc-6", DepartureTime: "10:30 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 4},
		{ID: 4, DriverID: "d-4", FromLocationID: "loc-7", ToLocationID: "loc-8", DepartureTime: "11:00 AM", Date: "2026-02-10", TotalSeats: 3, AvailableSeats: 1},
		{ID: 5, DriverID: "d-5", FromLocationID: "loc-9", ToLocationID: "loc-4", DepartureTime: "11:15 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 3},
		{ID: 6, DriverID: "d-6", FromLocationID: "loc-10", ToLocationID: "loc-3", DepartureTime: "11:30 AM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 2},
		{ID: 7, DriverID: "d-7", FromLocationID: "loc-11", ToLocationID: "loc-10", DepartureTime: "12:00 PM", Date: "2026-02-10", TotalSeats: 5, AvailableSeats: 4},
		{ID: 8, DriverID: "d-1", FromLocationID: "loc-14", ToLocationID: "loc-12", DepartureTime: "12:30 PM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 2},
		{ID: 9, DriverID: "d-3", FromLocationID: "loc-13", ToLocationID: "loc-5", DepartureTime: "1:00 PM", Date: "2026-02-10", TotalSeats: 4, AvailableSeats: 3},
	}
}
