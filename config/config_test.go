package config

import "testing"

func TestNewSnapshotsEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "value")

	env := New()
	if got := GetString(env, "CONFIG_TEST_KEY", ""); got != "value" {
		t.Errorf("GetString = %q, want %q", got, "value")
	}
}

func TestGetString(t *testing.T) {
	env := map[string]string{"PRESENT": "hello", "EMPTY": ""}

	if got := GetString(env, "PRESENT", "fallback"); got != "hello" {
		t.Errorf("GetString(PRESENT) = %q, want %q", got, "hello")
	}
	if got := GetString(env, "EMPTY", "fallback"); got != "" {
		t.Errorf("GetString(EMPTY) = %q, want the set empty value", got)
	}
	if got := GetString(env, "MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString(MISSING) = %q, want %q", got, "fallback")
	}
	if got := GetString(nil, "ANY", "fallback"); got != "fallback" {
		t.Errorf("GetString(nil map) = %q, want %q", got, "fallback")
	}
}

func TestGetBool(t *testing.T) {
	env := map[string]string{
		"TRUE_LOWER": "true",
		"TRUE_UPPER": "TRUE",
		"ONE":        "1",
		"FALSE":      "false",
		"GARBAGE":    "yes please",
	}

	if !GetBool(env, "TRUE_LOWER", false) {
		t.Error("GetBool(true) = false, want true")
	}
	if !GetBool(env, "TRUE_UPPER", false) {
		t.Error("GetBool(TRUE) = false, want true")
	}
	if !GetBool(env, "ONE", false) {
		t.Error("GetBool(1) = false, want true")
	}
	if GetBool(env, "FALSE", true) {
		t.Error("GetBool(false) = true, want false")
	}
	if GetBool(env, "GARBAGE", false) {
		t.Error("GetBool(unparsable) should fall back to the default")
	}
	if !GetBool(env, "MISSING", true) {
		t.Error("GetBool(missing) should fall back to the default")
	}
}

func TestGetInt(t *testing.T) {
	env := map[string]string{"PORT": "8080", "BAD": "eighty"}

	if got := GetInt(env, "PORT", 3000); got != 8080 {
		t.Errorf("GetInt(PORT) = %d, want 8080", got)
	}
	if got := GetInt(env, "BAD", 3000); got != 3000 {
		t.Errorf("GetInt(unparsable) = %d, want the default", got)
	}
	if got := GetInt(env, "MISSING", 3000); got != 3000 {
		t.Errorf("GetInt(missing) = %d, want the default", got)
	}
}
