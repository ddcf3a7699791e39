package helpers

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		env, level string
		want       logrus.Level
	}{
		{"development", "", logrus.DebugLevel},
		{"production", "", logrus.InfoLevel},
		{"production", "warn", logrus.WarnLevel},
		{"development", "bogus", logrus.DebugLevel},
	}
	for _, tc := range cases {
		l := NewLogger("test", tc.env, tc.level)
		if l.GetLevel() != tc.want {
			t.Errorf("env=%s level=%q: want %v, got %v", tc.env, tc.level, tc.want, l.GetLevel())
		}
	}
}

func TestNewLogger_FormatterByEnv(t *testing.T) {
	if _, ok := NewLogger("test", "development", "").Formatter.(*logrus.TextFormatter); !ok {
		t.Error("development should use TextFormatter")
	}
	if _, ok := NewLogger("test", "production", "").Formatter.(*logrus.JSONFormatter); !ok {
		t.Error("production should use JSONFormatter")
	}
}
