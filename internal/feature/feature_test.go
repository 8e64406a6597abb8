// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feature

import "testing"

func TestRegistryEntriesValidate(t *testing.T) {
	for _, f := range All() {
		if err := f.Validate(); err != nil {
			t.Errorf("feature %q: %v", f.ID, err)
		}
	}
}

func TestSchemaPresentExactlyForJSONFeatures(t *testing.T) {
	for _, f := range All() {
		if f.Informational() {
			if f.Schema != nil {
				t.Errorf("informational feature %q has a schema", f.ID)
			}
			continue
		}
		hasSchema := f.Schema != nil
		wantSchema := f.Kind == KindJSON
		if hasSchema != wantSchema {
			t.Errorf("feature %q: kind=%s schema=%v", f.ID, f.Kind, hasSchema)
		}
	}
}

func TestNavigationOrderStable(t *testing.T) {
	all := All()
	want := []string{IDGenerate, IDFix, IDExplain, IDDocs, IDTests, IDMockup, IDAbout, IDAuthor}
	if len(all) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, all[i].ID)
		}
	}
}

func TestGenerativeExcludesInformational(t *testing.T) {
	for _, f := range Generative() {
		if f.Informational() {
			t.Errorf("generative list contains informational feature %q", f.ID)
		}
	}
	if len(Generative()) != 6 {
		t.Errorf("expected 6 generative features, got %d", len(Generative()))
	}
}

func TestInformationalViewsCarryStaticContent(t *testing.T) {
	for _, id := range []string{IDAbout, IDAuthor} {
		f, ok := Get(id)
		if !ok {
			t.Fatalf("feature %q not registered", id)
		}
		if !f.Informational() {
			t.Errorf("feature %q should be informational", id)
		}
		if f.Static == "" {
			t.Errorf("feature %q has no static content", id)
		}
	}
}

func TestGetUnknownID(t *testing.T) {
	if _, ok := Get("no-such-feature"); ok {
		t.Error("expected lookup miss for unknown ID")
	}
}

func TestFixSchemaRequiredFields(t *testing.T) {
	s := FixSchema()
	required, ok := s["required"].([]string)
	if !ok {
		t.Fatal("fix schema has no required list")
	}
	want := map[string]bool{"analysis": true, "correctedCode": true, "explanation": true}
	for _, field := range required {
		if !want[field] {
			t.Errorf("unexpected required field %q", field)
		}
		delete(want, field)
	}
	if len(want) != 0 {
		t.Errorf("missing required fields: %v", want)
	}
}

func TestValidateRejectsInconsistentConfigs(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"no id", Config{Title: "T", PromptPrefix: "p", ActionLabel: "a", Kind: KindText}},
		{"json without schema", Config{ID: "x", Title: "T", PromptPrefix: "p", Kind: KindJSON}},
		{"text with schema", Config{ID: "x", Title: "T", PromptPrefix: "p", Kind: KindText, Schema: Schema{}}},
		{"no prompt no static", Config{ID: "x", Title: "T", Kind: KindText}},
		{"unknown kind", Config{ID: "x", Title: "T", PromptPrefix: "p", Kind: Kind("weird")}},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
