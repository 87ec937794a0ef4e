package app

import (
	"time"

	"github.com/mnstudio/quote-studio/internal/domain"
)

// SeedQuotes returns the initial catalogue shipped with the service,
// newest first. Engagement counters start at editorially chosen values so
// a fresh install does not look abandoned.
func SeedQuotes() []*domain.Quote {
	return []*domain.Quote{
		{
			ID:         "1",
			Text:       "The only way to do great work is to love what you do.",
			Author:     "Steve Jobs",
			Category:   "Motivation",
			Image:      "https://images.pexels.com/photos/3721941/pexels-photo-3721941.jpeg?auto=compress&cs=tinysrgb&w=800",
			Tags:       []string{"motivation", "work", "passion"},
			Likes:      45,
			Saves:      23,
			Shares:     12,
			UploadedBy: "admin",
			CreatedAt:  time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:         "2",
			Text:       "Success is not final, failure is not fatal: it is the courage to continue that counts.",
			Author:     "Winston Churchill",
			Category:   "Success",
			Image:      "https://images.pexels.com/photos/2883049/pexels-photo-2883049.jpeg?auto=compress&cs=tinysrgb&w=800",
			Tags:       []string{"success", "courage", "perseverance"},
			Likes:      67,
			Saves:      34,
			Shares:     18,
			UploadedBy: "admin",
			CreatedAt:  time.Date(2024, time.January, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:         "3",
			Text:       "The future belongs to those who believe in the beauty of their dreams.",
			Author:     "Eleanor Roosevelt",
			Category:   "Dreams",
			Image:      "https://images.pexels.com/photos/1329296/pexels-photo-1329296.jpeg?auto=compress&cs=tinysrgb&w=800",
			Tags:       []string{"dreams", "future", "belief"},
			Likes:      89,
			Saves:      45,
			Shares:     23,
			UploadedBy: "admin",
			CreatedAt:  time.Date(2024, time.January, 13, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:         "4",
			Text:       "Innovation distinguishes between a leader and a follower.",
			Author:     "Steve Jobs",
			Category:   "Leadership",
			Image:      "https://images.pexels.com/photos/3747463/pexels-photo-3747463.jpeg?auto=compress&cs=tinysrgb&w=800",
			Tags:       []string{"innovation", "leadership", "creativity"},
			Likes:      56,
			Saves:      29,
			Shares:     15,
			UploadedBy: "admin",
			CreatedAt:  time.Date(2024, time.January, 12, 9, 0, 0, 0, time.UTC),
		},
	}
}
