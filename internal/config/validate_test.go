package config

import (
	"testing"

	"script-shelf/internal/domain"
)

// TestValidate covers the structural check on raw documents.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"empty object", `{}`, false},
		{"minimal", `{"categories":[],"allTags":[],"scriptSettings":{}}`, true},
		{"null", `null`, false},
		{"string", `"string"`, false},
		{"array", `[]`, false},
		{"garbage", `{not json`, false},
		{"null categories", `{"categories":null,"allTags":[],"scriptSettings":{}}`, false},
		{"array script settings", `{"categories":[],"allTags":[],"scriptSettings":[]}`, false},
		{"missing script settings", `{"version":"1.0","categories":[],"allTags":[]}`, false},
		{"unknown tags tolerated", `{"categories":["全部"],"allTags":[],"scriptSettings":{"a.jsx":{"tags":["ghost"]}}}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Validate([]byte(tc.data)); got != tc.want {
				t.Fatalf("Validate(%s) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}

// TestValidateSettings covers the typed form of the check.
func TestValidateSettings(t *testing.T) {
	if ValidateSettings(nil) {
		t.Fatal("nil document should be invalid")
	}
	if ValidateSettings(&domain.Settings{}) {
		t.Fatal("zero document should be invalid")
	}
	defaults := Defaults()
	if !ValidateSettings(&defaults) {
		t.Fatal("defaults should be valid")
	}
}
