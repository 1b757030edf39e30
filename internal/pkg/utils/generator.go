package utils

import (
	"fmt"
	"nutrisha-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateEventID() string {
	return uuid.New().String()
}

// GenerateMealImageObjectName returns a date partitioned object name, e.g.
// meal-images/2024/05/01/<uuid>.jpg.
func GenerateMealImageObjectName(now time.Time, fileExtension string) string {
	return fmt.Sprintf(constvars.MealImageObjectNameFormat, now.Format(constvars.MealImageObjectDateFormat), uuid.New().String(), fileExtension)
}
