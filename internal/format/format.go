package format

import (
	"fmt"
	"time"

	"billed/internal/models"
)

// French month abbreviations, index 0 = January.
var months = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// Date renders an ISO date as displayed in the bills table, e.g. "4 Avr. 04".
func Date(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("format: unparseable date %q: %w", iso, err)
	}
	return fmt.Sprintf("%d %s. %s", t.Day(), months[t.Month()-1], t.Format("06")), nil
}

// Status maps a stored bill status to its display label.
func Status(status string) string {
	switch status {
	case models.StatusPending:
		return "En attente"
	case models.StatusAccepted:
		return "Accepté"
	case models.StatusRefused:
		return "Refused"
	default:
		return status
	}
}
