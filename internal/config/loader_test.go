package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		name     string
		embedded []byte
		decoded  any
		expected any
	}{
		{"platformer", defaultPlatformerYAML, &PlatformerConfig{}, ptr(DefaultPlatformerConfig())},
		{"demo", defaultDemoYAML, &DemoConfig{}, ptr(DefaultDemoConfig())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := yaml.Unmarshal(tc.embedded, tc.decoded); err != nil {
				t.Fatalf("embedded YAML does not parse: %v", err)
			}
			if !reflect.DeepEqual(tc.decoded, tc.expected) {
				t.Errorf("embedded YAML diverges from hardcoded defaults:\n got  %+v\n want %+v", tc.decoded, tc.expected)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultPlatformerConfig().Validate(); err != nil {
		t.Errorf("default platformer config invalid: %v", err)
	}
	if err := DefaultDemoConfig().Validate(); err != nil {
		t.Errorf("default demo config invalid: %v", err)
	}
}

func TestLoadPlatformerCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	data := "collectibles:\n  count: 5\n  reward: 25\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() failed: %v", err)
	}
	if cfg.Collectibles.Count != 5 || cfg.Collectibles.Reward != 25 {
		t.Errorf("overrides not applied: %+v", cfg.Collectibles)
	}
	// Untouched sections keep their defaults
	if cfg.Player.Speed != 160 {
		t.Errorf("Player.Speed = %v, expected default 160", cfg.Player.Speed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadDemo(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDemo(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	cfg := DefaultDemoConfig()
	cfg.Obstacles.Gravity = Range{Min: 200, Max: 100}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "obstacles.gravity") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("platformer")) == 0 || len(GetDefaultYAML("demo")) == 0 {
		t.Error("embedded defaults missing")
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown scene should have no default YAML")
	}
}

func ptr[T any](v T) *T { return &v }

func TestEncodeDecodeKeepsLoadedConfig(t *testing.T) {
	p := DefaultPlatformerConfig()
	p.Collectibles.Count = 7
	p.World.Width = 640
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	gotP, err := DecodePlatformer(data)
	if err != nil {
		t.Fatalf("DecodePlatformer() failed: %v", err)
	}
	if gotP.Collectibles.Count != 7 || gotP.World.Width != 640 {
		t.Errorf("decoded platformer = %+v", gotP.Collectibles)
	}
	if again, _ := Encode(gotP); string(again) != string(data) {
		t.Errorf("platformer config changed across encode/decode:\n%s\n%s", data, again)
	}

	d := DefaultDemoConfig()
	d.Obstacles.Count = 3
	data, err = Encode(d)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	gotD, err := DecodeDemo(data)
	if err != nil {
		t.Fatalf("DecodeDemo() failed: %v", err)
	}
	if again, _ := Encode(gotD); string(again) != string(data) || gotD.Obstacles.Count != 3 {
		t.Errorf("demo config changed across encode/decode:\n%s\n%s", data, again)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	if _, err := DecodePlatformer([]byte("collectibles:\n  count: 0\n")); err == nil {
		t.Error("DecodePlatformer() accepted zero collectibles")
	}
	if _, err := DecodeDemo([]byte("world: [")); err == nil {
		t.Error("DecodeDemo() accepted malformed YAML")
	}
}
