// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/danielhkuo/transit-routes/models"
)

// ActivePriceThreshold is the product price above which a route is Active.
const ActivePriceThreshold = 500

type Template struct {
	Prefix   string
	Mode     string
	Desc     string
	Schedule string
	Hours    string
}

var Templates = []Template{
	{"Central Line", "Metro", "Express metro service connecting major city hubs", "Every 5 mins", "5:00 AM - 12:00 AM"},
	{"Airport Shuttle", "Bus", "Direct bus service to international airport terminal", "Every 20 mins", "24 Hours"},
	{"Coastal Express", "Train", "Scenic coastal railway with multiple beach stops", "Every 30 mins", "6:00 AM - 10:00 PM"},
	{"North Circular", "Bus", "Circular bus route covering northern suburbs", "Every 15 mins", "5:30 AM - 11:30 PM"},
	{"Green Line", "Metro", "Underground rapid transit through business district", "Every 3 mins", "5:00 AM - 1:00 AM"},
	{"River Ferry", "Ferry", "Waterway transport along the main river route", "Every 45 mins", "7:00 AM - 9:00 PM"},
	{"Blue Line", "Metro", "High-frequency metro connecting residential areas", "Every 4 mins", "5:00 AM - 12:00 AM"},
	{"East Express", "Train", "Fast train service to eastern destinations", "Every 20 mins", "6:00 AM - 11:00 PM"},
	{"City Loop", "Tram", "Historic tram loop around city center attractions", "Every 10 mins", "7:00 AM - 10:00 PM"},
	{"South Link", "Bus", "Regional bus connecting southern communities", "Every 25 mins", "6:00 AM - 11:00 PM"},
	{"Red Line", "Metro", "Major metro line with 24-hour service", "Every 6 mins", "24 Hours"},
	{"Mountain Route", "Bus", "Scenic mountain pass route with viewpoints", "Every 60 mins", "8:00 AM - 6:00 PM"},
	{"Harbor Cruise", "Ferry", "Regular ferry service across the harbor", "Every 30 mins", "6:00 AM - 10:00 PM"},
	{"Orange Line", "Metro", "Newly opened metro line with modern facilities", "Every 5 mins", "5:30 AM - 12:30 AM"},
	{"West Connector", "Bus", "High-frequency bus connecting western suburbs", "Every 12 mins", "5:00 AM - 11:00 PM"},
	{"Purple Line", "Metro", "Express metro to university and research district", "Every 8 mins", "5:00 AM - 1:00 AM"},
	{"Valley Route", "Train", "Regional train through scenic valley landscape", "Every 40 mins", "7:00 AM - 9:00 PM"},
	{"Night Owl", "Bus", "24-hour night bus service across all zones", "Every 30 mins", "24 Hours"},
	{"Yellow Line", "Tram", "Light rail connecting shopping districts", "Every 10 mins", "8:00 AM - 11:00 PM"},
	{"Island Ferry", "Ferry", "Daily ferry service to nearby islands", "Every 90 mins", "7:00 AM - 8:00 PM"},
	{"Campus Shuttle", "Bus", "University campus circular bus route", "Every 15 mins", "7:00 AM - 10:00 PM"},
	{"Brown Line", "Metro", "Underground service to historical district", "Every 7 mins", "5:00 AM - 12:00 AM"},
	{"Beach Express", "Bus", "Summer express bus to popular beaches", "Every 20 mins", "6:00 AM - 9:00 PM"},
	{"Silver Line", "Train", "High-speed rail to neighboring cities", "Every 30 mins", "5:30 AM - 11:30 PM"},
	{"Park & Ride", "Bus", "Connecting parking facilities to city center", "Every 10 mins", "6:00 AM - 10:00 PM"},
	{"Sports Stadium", "Shuttle", "Event shuttle service on game days", "Event Days", "Match Times"},
	{"Pink Line", "Tram", "Light rail through entertainment district", "Every 12 mins", "10:00 AM - 2:00 AM"},
	{"Highway Express", "Bus", "Limited-stop express bus on main highway", "Every 15 mins", "5:00 AM - 11:00 PM"},
	{"Golden Route", "Train", "Premium tourist train with panoramic views", "Every 60 mins", "9:00 AM - 7:00 PM"},
	{"Medical Center", "Shuttle", "Free shuttle connecting hospitals and clinics", "Every 20 mins", "6:00 AM - 10:00 PM"},
}

var Images = []string{
	"https://images.unsplash.com/photo-1544620347-c4fd4a3d5957?w=400", // train
	"https://images.unsplash.com/photo-1570125909232-eb263c188f7e?w=400", // bus
	"https://images.unsplash.com/photo-1474487548417-781cb71495f3?w=400", // metro
	"https://images.unsplash.com/photo-1589308078059-be1415eab4c7?w=400", // ferry
	"https://images.unsplash.com/photo-1554672408-17e7c4e5d4f7?w=400",    // tram
	"https://images.unsplash.com/photo-1464219789935-c2d9d9aba644?w=400", // station
	"https://images.unsplash.com/photo-1543783207-ec64e4d95325?w=400",    // bus interior
	"https://images.unsplash.com/photo-1583266260445-5c0371e2117d?w=400", // subway
	"https://images.unsplash.com/photo-1469854523086-cc02fe5d8800?w=400",
	"https://images.unsplash.com/photo-1530536875268-1d2ea6a87e4e?w=400", // railway
}

// FromProducts maps products to routes by position: the product at index i
// takes template i mod len(Templates) and image i mod len(Images).
// A nil rnd uses the global source.
func FromProducts(products []models.Product, rnd *rand.Rand) []models.Route {
	routes := make([]models.Route, 0, len(products))
	for i, p := range products {
		routes = append(routes, FromProduct(i, p, routeNumber(rnd)))
	}
	return routes
}

// FromProduct builds the route for the product at index i.
func FromProduct(i int, p models.Product, number int) models.Route {
	tpl := Templates[i%len(Templates)]

	status := models.StatusUpcoming
	if p.Price > ActivePriceThreshold {
		status = models.StatusActive
	}

	return models.Route{
		ID:             p.ID,
		Title:          fmt.Sprintf("%s (%s %d)", tpl.Prefix, tpl.Mode, number),
		Description:    tpl.Desc,
		Status:         status,
		Image:          Images[i%len(Images)],
		Schedule:       tpl.Schedule,
		Frequency:      tpl.Schedule,
		OperatingHours: tpl.Hours,
	}
}

// routeNumber returns a display number in [100, 999]
func routeNumber(rnd *rand.Rand) int {
	if rnd == nil {
		return rand.IntN(900) + 100
	}
	return rnd.IntN(900) + 100
}
