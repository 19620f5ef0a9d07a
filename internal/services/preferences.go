package services

import (
	"fmt"
	"strings"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/request_models"
	"concierge/pkg/utils"

	"github.com/samber/lo"
)

// MergePreferences applies patch on top of current. The result is only returned when every
// supplied field is valid.
func MergePreferences(current chat_models.Preferences, patch request_models.PreferencesPatch) (chat_models.Preferences, error) {
	next := current
	next.AccommodationTypes = append([]string{}, current.AccommodationTypes...)

	if patch.TravelStyle != nil {
		style, ok := lo.Find(chat_models.TravelStyles, func(s chat_models.TravelStyle) bool {
			return strings.EqualFold(string(s), strings.TrimSpace(*patch.TravelStyle))
		})
		if !ok {
			return current, fmt.Errorf("%w: travel style %q", utils.ErrUnknownPreference, *patch.TravelStyle)
		}
		next.TravelStyle = style
	}
	if patch.DietaryRestrictions != nil {
		next.DietaryRestrictions = strings.TrimSpace(*patch.DietaryRestrictions)
	}
	if patch.AccessibilityNeeds != nil {
		next.AccessibilityNeeds = strings.TrimSpace(*patch.AccessibilityNeeds)
	}
	if patch.AccommodationTypes != nil {
		types := make([]string, 0, len(patch.AccommodationTypes))
		for _, t := range patch.AccommodationTypes {
			opt, err := accommodationOption(t)
			if err != nil {
				return current, err
			}
			types = append(types, opt)
		}
		next.AccommodationTypes = lo.Uniq(types)
	}
	return next, nil
}

// ToggleAccommodation adds option when absent and removes it when present.
func ToggleAccommodation(current chat_models.Preferences, option string) (chat_models.Preferences, error) {
	opt, err := accommodationOption(option)
	if err != nil {
		return current, err
	}
	next := current
	if lo.Contains(current.AccommodationTypes, opt) {
		next.AccommodationTypes = lo.Without(current.AccommodationTypes, opt)
	} else {
		next.AccommodationTypes = append(append([]string{}, current.AccommodationTypes...), opt)
	}
	return next, nil
}

func accommodationOption(s string) (string, error) {
	opt, ok := lo.Find(chat_models.AccommodationOptions, func(o string) bool {
		return strings.EqualFold(o, strings.TrimSpace(s))
	})
	if !ok {
		return "", fmt.Errorf("%w: accommodation %q", utils.ErrUnknownPreference, s)
	}
	return opt, nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// PreferencesBlock renders preferences the way they are prefixed to every user turn.
func PreferencesBlock(p chat_models.Preferences) string {
	return fmt.Sprintf("Current Traveler Preferences:\n- Style: %s\n- Dietary: %s\n- Accessibility: %s\n- Accommodation: %s",
		p.TravelStyle,
		orNone(p.DietaryRestrictions),
		orNone(p.AccessibilityNeeds),
		strings.Join(p.AccommodationTypes, ", "),
	)
}
