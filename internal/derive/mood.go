// Package derive holds the pure view computations over stored records:
// mood classification, weight-based health status, calendar filtering and
// gallery filtering. Nothing here mutates state; everything is recomputed
// on each read.
package derive

import (
	"strings"

	"github.com/petpalapp/petpal/internal/model"
)

// MoodBand is a labeled range for the mood-history classification.
type MoodBand struct {
	Label string
	Color string
}

// ClassifyMood maps the five-metric average onto the history band table.
// Ties break toward the higher band.
func ClassifyMood(average float64) MoodBand {
	switch {
	case average >= 80:
		return MoodBand{Label: "Muy Feliz", Color: "#FFD700"}
	case average >= 60:
		return MoodBand{Label: "Activo", Color: "#FF6B9D"}
	case average >= 40:
		return MoodBand{Label: "Tranquilo", Color: "#9C88FF"}
	default:
		return MoodBand{Label: "Bajo de ánimo", Color: "#B0B0B0"}
	}
}

// DescribeMood builds a short composite descriptor from the current metrics.
// Each metric contributes a positive adjective at >=70, a negative one below
// 40 and nothing in between; playfulness has no negative adjective. All-zero
// metrics mean nothing was ever entered.
func DescribeMood(m model.MoodSnapshot) string {
	if m.Happiness == 0 && m.Energy == 0 && m.Calmness == 0 && m.Playfulness == 0 && m.Appetite == 0 {
		return "Sin datos"
	}

	var parts []string
	pick := func(v int, high, low string) {
		switch {
		case v >= 70:
			parts = append(parts, high)
		case v < 40 && low != "":
			parts = append(parts, low)
		}
	}
	pick(m.Happiness, "Feliz", "Triste")
	pick(m.Energy, "Activo", "Cansado")
	pick(m.Calmness, "Tranquilo", "Inquieto")
	pick(m.Playfulness, "Juguetón", "")
	pick(m.Appetite, "Con Apetito", "Inapetente")

	if len(parts) == 0 {
		return "Estado Normal"
	}
	return strings.Join(parts, " y ")
}

// OverallMood is the mood-board summary band, distinct from the history bands.
type OverallMood struct {
	Mood        string
	Emoji       string
	Color       string
	Description string
}

// SummarizeMood maps the five-metric average onto the mood-board band table.
func SummarizeMood(m model.MoodSnapshot) OverallMood {
	average := m.Average()
	switch {
	case average >= 80:
		return OverallMood{Mood: "Excelente", Emoji: "😊", Color: "#FBD38D", Description: "Tu mascota está muy feliz y saludable"}
	case average >= 65:
		return OverallMood{Mood: "Muy Bien", Emoji: "😄", Color: "#FC8181", Description: "Tu mascota está en buen estado"}
	case average >= 50:
		return OverallMood{Mood: "Bien", Emoji: "🙂", Color: "#81E6D9", Description: "Tu mascota está tranquila"}
	case average >= 35:
		return OverallMood{Mood: "Regular", Emoji: "😐", Color: "#F39C12", Description: "Tu mascota necesita más atención"}
	default:
		return OverallMood{Mood: "Necesita Cuidados", Emoji: "😟", Color: "#E74C3C", Description: "Presta más atención a tu mascota"}
	}
}
