package logging

import "testing"

func TestNew(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		log, err := New(lvl, lvl == "debug")
		if err != nil {
			t.Errorf("New(%q): %v", lvl, err)
			continue
		}
		_ = log.Sync()
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
