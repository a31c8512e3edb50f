package main

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		apiKey string
		gemini string
		want   string
	}{
		{"flag wins", "from-flag", "from-env", "from-gemini", "from-flag"},
		{"API_KEY before GEMINI_API_KEY", "", "from-env", "from-gemini", "from-env"},
		{"GEMINI_API_KEY fallback", "", "", "from-gemini", "from-gemini"},
		{"none", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("API_KEY", tt.apiKey)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			if got := resolveAPIKey(tt.flag); got != tt.want {
				t.Errorf("resolveAPIKey(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}

func TestSettingsOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.AddFlagSet(rootCmd.Flags())

	o := settingsOverrides(flags)
	if o.Sound != nil || o.Volume != nil || o.Speech != nil || o.Voice != nil {
		t.Fatalf("unset flags must not override settings: %+v", o)
	}

	if err := flags.Parse([]string{"--speech=false", "--volume", "0.3"}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		speak, volume = true, 0.8
		flags.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})

	o = settingsOverrides(flags)
	if o.Speech == nil || *o.Speech {
		t.Errorf("--speech=false not applied: %+v", o.Speech)
	}
	if o.Volume == nil || *o.Volume != 0.3 {
		t.Errorf("--volume 0.3 not applied: %+v", o.Volume)
	}
	if o.Sound != nil || o.Voice != nil {
		t.Errorf("only given flags override settings: %+v", o)
	}
}
