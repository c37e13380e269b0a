// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		locale string
		key    string
		want   string
	}{
		{"en", CreatePoint, "Create point"},
		{"uk", CreatePoint, "Створити точку"},
		{"uk-UA", CreateResidential, "Створити АТ"},
		{"ru", AddEntryPoint, "Создавать точку въезда"},
		{"fr", CopyHNToName, "Copy house number into name"},
		{"", InheritEntryPoint, "Inherit parent's landmark entry point"},
		{"not a locale!", CreatePoint, "Create point"},
		{"uk", "deletePoint", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.locale, tt.key))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.Equal(t, language.Ukrainian, Match("uk-UA"))
	assert.Equal(t, language.English, Match("ja"))
}

func TestLabels(t *testing.T) {
	labels := Labels("ru")
	assert.Len(t, labels, 5)
	assert.Equal(t, "Создать точку", labels[CreatePoint])
}
