package domain

import "time"

var baselineCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Baseline returns the seed catalog shown ahead of approved submissions.
// It is rebuilt on every call so callers may modify the result.
func Baseline() []Item {
	items := []Item{
		{
			ID:          "1",
			Title:       "Electric Drill",
			Description: "18V cordless drill with battery pack. Perfect for home DIY projects.",
			Category:    "Tools",
			Image:       "https://images.unsplash.com/photo-1504148455328-c376907d081c?w=800&auto=format&fit=crop",
			Owner:       "Sarah Johnson",
			Available:   true,
		},
		{
			ID:          "2",
			Title:       "Garden Rake",
			Description: "Heavy-duty garden rake, great for autumn leaf cleanup.",
			Category:    "Garden",
			Image:       "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800&auto=format&fit=crop",
			Owner:       "Mike Chen",
			Available:   true,
		},
		{
			ID:          "3",
			Title:       "Camping Tent",
			Description: "4-person camping tent, waterproof and easy to set up.",
			Category:    "Sports Equipment",
			Image:       "https://images.unsplash.com/photo-1478131143081-80f7f84ca84d?w=800&auto=format&fit=crop",
			Owner:       "Emma Davis",
			Available:   false,
		},
		{
			ID:          "4",
			Title:       "Stand Mixer",
			Description: "Professional stand mixer with multiple attachments. Perfect for baking.",
			Category:    "Kitchen",
			Image:       "https://images.unsplash.com/photo-1578500494198-246f612d3b3d?w=800&auto=format&fit=crop",
			Owner:       "David Martinez",
			Available:   true,
		},
		{
			ID:          "5",
			Title:       "Photography Book Collection",
			Description: "Set of 5 National Geographic photography books.",
			Category:    "Books",
			Image:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=800&auto=format&fit=crop",
			Owner:       "Lisa Anderson",
			Available:   true,
		},
		{
			ID:          "6",
			Title:       "Pressure Washer",
			Description: "Electric pressure washer for cleaning driveways and patios.",
			Category:    "Tools",
			Image:       "https://images.unsplash.com/photo-1581578731548-c64695cc6952?w=800&auto=format&fit=crop",
			Owner:       "Tom Wilson",
			Available:   true,
		},
	}

	for i := range items {
		items[i].Status = StatusApproved
		items[i].CreatedAt = baselineCreatedAt
	}

	return items
}
