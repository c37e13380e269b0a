// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

// Package i18n holds the user facing labels of the address point actions.
package i18n

import (
	"golang.org/x/text/language"
)

// Label keys.
const (
	CreatePoint       = "createPoint"
	CreateResidential = "createResidential"
	AddEntryPoint     = "addEntryPoint"
	InheritEntryPoint = "inheritEntryPoint"
	CopyHNToName      = "copyHNToName"
)

// Unknown is returned for keys without any translation.
const Unknown = "Unknown"

var translations = map[language.Tag]map[string]string{
	language.English: {
		CreatePoint:       "Create point",
		CreateResidential: "Create residential",
		AddEntryPoint:     "Add entry point",
		InheritEntryPoint: "Inherit parent's landmark entry point",
		CopyHNToName:      "Copy house number into name",
	},
	language.Ukrainian: {
		CreatePoint:       "Створити точку",
		CreateResidential: "Створити АТ",
		AddEntryPoint:     "Додавати точку в'їзду",
		InheritEntryPoint: "Наслідувати точку в'їзду батьківського ПОІ",
		CopyHNToName:      "Копіювати номер будинку в назву",
	},
	language.Russian: {
		CreatePoint:       "Создать точку",
		CreateResidential: "Создать АТ",
		AddEntryPoint:     "Создавать точку въезда",
		InheritEntryPoint: "Наследовать точку въезда родительского ПОИ",
		CopyHNToName:      "Копировать номер дома в название",
	},
}

// English comes first so that it is the matcher's fallback.
var supported = []language.Tag{language.English, language.Ukrainian, language.Russian}

var matcher = language.NewMatcher(supported)

// Match returns the supported language closest to locale.
func Match(locale string) language.Tag {
	_, i, confidence := matcher.Match(language.Make(locale))
	if confidence == language.No {
		return language.English
	}

	return supported[i]
}

// Translate returns the label for key in locale, falling back to English
// and then to Unknown.
func Translate(locale, key string) string {
	if s, ok := translations[Match(locale)][key]; ok {
		return s
	}

	if s, ok := translations[language.English][key]; ok {
		return s
	}

	return Unknown
}

// Labels returns every label for locale.
func Labels(locale string) map[string]string {
	labels := make(map[string]string, len(translations[language.English]))
	for key := range translations[language.English] {
		labels[key] = Translate(locale, key)
	}

	return labels
}
