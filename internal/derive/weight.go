package derive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petpalapp/petpal/internal/model"
)

// WeightStatus classifies a pet's weight against its ideal range.
type WeightStatus struct {
	Status  string
	Color   string
	Emoji   string
	Message string
}

type weightRange struct {
	min, max float64
}

var dogRanges = map[string]weightRange{
	"chihuahua":        {1.5, 3},
	"pomerania":        {1.8, 3.5},
	"yorkshire":        {2, 3.5},
	"pug":              {6, 9},
	"shih tzu":         {4, 7.5},
	"beagle":           {9, 11},
	"cocker":           {12, 15},
	"bulldog":          {18, 25},
	"labrador":         {25, 36},
	"golden retriever": {25, 34},
	"pastor":           {30, 40},
	"rottweiler":       {35, 60},
}

var catRanges = map[string]weightRange{
	"siames":  {3, 5},
	"persa":   {3.5, 6},
	"maine":   {5, 9},
	"bengala": {4, 7},
}

var (
	dogDefault = weightRange{8, 30}
	catDefault = weightRange{3, 6}
)

// WeightHealth classifies a pet's weight (the Peso field, free text) into one
// of five bands against the ideal range for its species and breed. Unknown
// species fall back to ±20% of the current weight; a missing or non-numeric
// weight yields a "Sin datos" status.
func WeightHealth(pet model.Pet) WeightStatus {
	peso, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(pet.Peso), "kg")), 64)
	if err != nil || peso <= 0 {
		return WeightStatus{
			Status:  "Sin datos",
			Color:   "#4A5568",
			Emoji:   "📊",
			Message: "Agrega el peso para ver el estado de salud",
		}
	}

	ideal := idealRange(pet.Especie, pet.Raza, peso)
	low := ideal.min * 0.9
	high := ideal.max * 1.1

	switch {
	case peso < low:
		return WeightStatus{
			Status:  "Desnutrido",
			Color:   "#E74C3C",
			Emoji:   "⚠️",
			Message: fmt.Sprintf("Peso muy bajo (ideal: %s-%s kg). Consulta al veterinario.", trimFloat(ideal.min), trimFloat(ideal.max)),
		}
	case peso < ideal.min:
		return WeightStatus{
			Status:  "Bajo Peso",
			Color:   "#F39C12",
			Emoji:   "⬇️",
			Message: fmt.Sprintf("Ligeramente bajo (ideal: %s-%s kg).", trimFloat(ideal.min), trimFloat(ideal.max)),
		}
	case peso <= ideal.max:
		return WeightStatus{
			Status:  "Saludable",
			Color:   "#48BB78",
			Emoji:   "✅",
			Message: fmt.Sprintf("Peso ideal (%s-%s kg). ¡Excelente!", trimFloat(ideal.min), trimFloat(ideal.max)),
		}
	case peso <= high:
		return WeightStatus{
			Status:  "Sobrepeso",
			Color:   "#F39C12",
			Emoji:   "⬆️",
			Message: fmt.Sprintf("Ligeramente alto (ideal: %s-%s kg).", trimFloat(ideal.min), trimFloat(ideal.max)),
		}
	default:
		return WeightStatus{
			Status:  "Obesidad",
			Color:   "#E74C3C",
			Emoji:   "🚨",
			Message: fmt.Sprintf("Peso muy alto (ideal: %s-%s kg). Consulta al veterinario.", trimFloat(ideal.min), trimFloat(ideal.max)),
		}
	}
}

func idealRange(especie, raza string, peso float64) weightRange {
	especie = strings.ToLower(especie)
	raza = strings.ToLower(raza)
	switch {
	case strings.Contains(especie, "perro") || strings.Contains(especie, "dog"):
		if r, ok := dogRanges[raza]; ok {
			return r
		}
		return dogDefault
	case strings.Contains(especie, "gato") || strings.Contains(especie, "cat"):
		if r, ok := catRanges[raza]; ok {
			return r
		}
		return catDefault
	default:
		return weightRange{peso * 0.8, peso * 1.2}
	}
}

// trimFloat formats a bound without trailing zeros (25 not 25.0, 3.5 stays 3.5).
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
