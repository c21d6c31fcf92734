package barber

import (
	"strings"

	"github.com/BruksfildServices01/barber-connect/internal/models"
)

// ValidateServices reports the first problem with a service menu, or "".
func ValidateServices(services []models.Service) string {
	seen := make(map[string]bool, len(services))
	for _, s := range services {
		name := strings.TrimSpace(s.Name)
		switch {
		case name == "":
			return "Every service needs a name."
		case s.Price < 0:
			return "Service prices cannot be negative."
		case seen[name]:
			return "Service names must be unique."
		}
		seen[name] = true
	}
	return ""
}
