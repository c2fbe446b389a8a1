package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// en and hi carry the full string table; the other languages override a
// subset and fall back through Messages().
func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")
	hi := mustLoadLocaleMessages(t, "hi")

	missingInHI := missingKeys(en, hi)
	missingInEN := missingKeys(hi, en)

	if len(missingInHI) == 0 && len(missingInEN) == 0 {
		return
	}

	if len(missingInHI) > 0 {
		t.Errorf("keys missing in hi locale: %s", strings.Join(missingInHI, ", "))
	}
	if len(missingInEN) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missingInEN, ", "))
	}
}

func TestPartialLocalesOnlyUseKnownKeys(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")

	for _, language := range []string{"te", "bn", "mr", "gu", "ta", "kn", "ml", "pa"} {
		partial := mustLoadLocaleMessages(t, language)
		if unknown := missingKeys(partial, en); len(unknown) > 0 {
			t.Errorf("locale %s has keys absent from en: %s", language, strings.Join(unknown, ", "))
		}
	}
}

func TestMessagesFallBackToDefaultLanguage(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve test file path")
	}

	manager, err := NewManager("en", filepath.Join(filepath.Dir(thisFile), "locales"))
	if err != nil {
		t.Fatalf("init manager: %v", err)
	}

	messages := manager.Messages("te")
	if messages["nav_home"] == "" || messages["nav_home"] == manager.Messages("en")["nav_home"] {
		t.Errorf("expected te to override nav_home, got %q", messages["nav_home"])
	}
	if messages["login_btn"] != manager.Messages("en")["login_btn"] {
		t.Errorf("expected te to fall back to en for login_btn, got %q", messages["login_btn"])
	}
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve test file path: runtime.Caller failed")
	}
	localesDir := filepath.Join(filepath.Dir(thisFile), "locales")
	localePath := filepath.Join(localesDir, language+".json")

	content, err := os.ReadFile(localePath)
	if err != nil {
		t.Fatalf("read locale %q: %v", language, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", language, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", language)
	}

	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
