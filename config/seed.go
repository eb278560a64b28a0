package config

import (
	"log"

	"github.com/Shish1928/mental-health-platform/models"
	"gorm.io/gorm"
)

// defaultEmergencyResources are inserted on first boot so the emergency
// page is never empty, even before operators load region specific data.
var defaultEmergencyResources = []models.EmergencyResource{
	{
		Name:        "988 Suicide & Crisis Lifeline",
		Description: "Free and confidential support for people in distress, 24/7.",
		Phone:       "988",
		URL:         "https://988lifeline.org",
		Region:      "us",
		Language:    "en",
		Category:    "crisis",
		Available24: true,
		Priority:    100,
	},
	{
		Name:        "Crisis Text Line",
		Description: "Text HOME to connect with a volunteer crisis counselor.",
		Phone:       "741741",
		URL:         "https://www.crisistextline.org",
		Region:      "us",
		Language:    "en",
		Category:    "crisis",
		Available24: true,
		Priority:    90,
	},
	{
		Name:        "iCall Helpline",
		Description: "Psychosocial helpline by TISS offering counseling in multiple Indian languages.",
		Phone:       "9152987821",
		URL:         "https://icallhelpline.org",
		Region:      "in",
		Language:    "hi",
		Category:    "counseling",
		Available24: false,
		Priority:    80,
	},
	{
		Name:        "Vandrevala Foundation Helpline",
		Description: "Mental health support and crisis intervention across India.",
		Phone:       "18602662345",
		URL:         "https://www.vandrevalafoundation.com",
		Region:      "in",
		Language:    "en",
		Category:    "crisis",
		Available24: true,
		Priority:    85,
	},
	{
		Name:        "Teléfono de la Esperanza",
		Description: "Emotional crisis support line for Spanish speakers.",
		Phone:       "717003717",
		URL:         "https://telefonodelaesperanza.org",
		Region:      "es",
		Language:    "es",
		Category:    "crisis",
		Available24: true,
		Priority:    80,
	},
	{
		Name:        "Campus Peer Support Network",
		Description: "Trained student volunteers offering peer listening sessions.",
		Region:      "us",
		Language:    "en",
		Category:    "peer-support",
		Available24: false,
		Priority:    40,
	},
}

// SeedEmergencyResources inserts the default helpline set when the table is empty.
func SeedEmergencyResources(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.EmergencyResource{}).Count(&count).Error; err != nil {
		log.Printf("emergency resource seed skipped: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if err := db.Create(&defaultEmergencyResources).Error; err != nil {
		log.Printf("emergency resource seed failed: %v", err)
	}
}
