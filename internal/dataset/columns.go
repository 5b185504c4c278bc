package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/model"
)

var errNotFinite = errors.New("value is not finite")

// Header aliases, compared after normalizeHeader.
var (
	regionAliases     = []string{"region", "kabupaten", "kabkota", "kabupatenkota", "kabupatendankota"}
	yearAliases       = []string{"year", "tahun"}
	methodAliases     = []string{"method", "metode", "model"}
	predictionAliases = []string{"prediction", "prediksi", "prevalensistunting", "prevalensi", "prevalence"}
	mapeAliases       = []string{"mape"}
	mseAliases        = []string{"mse"}

	featureAliases = map[model.FeatureName][]string{
		model.FeatureLowBirthWeight:     {"bayibblr", "bblr", "lowbirthweight"},
		model.FeaturePostpartumVitaminA: {"ibunifasvita", "vitamina", "postpartumvitamina"},
		model.FeatureAntenatalK4:        {"k4", "cakupank4", "antenatalk4"},
		model.FeatureHDI:                {"ipm", "hdi", "humandevelopmentindex"},
		model.FeatureDrinkingWater:      {"minumlayak", "airminumlayak", "drinkingwater"},
		model.FeatureSanitation:         {"sanitasilayak", "sanitation"},
	}
)

// normalizeHeader lowercases and drops everything that is not a letter or digit,
// so "Kabupaten/Kota", "kab_kota" and "KabKota" compare equal to their aliases.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnIndex maps normalized header names to their position.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// find returns the position of the first alias present, or -1.
func (c columnIndex) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i
		}
	}
	return -1
}

// require is find that fails with ErrMissingColumn.
func (c columnIndex) require(name string, aliases []string) (int, error) {
	i := c.find(aliases)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", common.ErrMissingColumn, name)
	}
	return i, nil
}

// parseNumber parses a finite float, accepting a decimal comma when the
// table is not comma separated.
func parseNumber(s string, delimiter rune) (float64, error) {
	s = strings.TrimSpace(s)
	if delimiter != ',' && strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// parseYear accepts integral values written either as "2020" or "2020.0".
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
