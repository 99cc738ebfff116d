package config

import "testing"

func TestICEServers_STUNOnly(t *testing.T) {
	cfg := &Config{STUNURLs: []string{"stun:stun.l.google.com:19302"}}

	servers := cfg.ICEServers()
	if len(servers) != 1 {
		t.Fatalf("servers=%d, want 1", len(servers))
	}
	if servers[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("URLs=%v", servers[0].URLs)
	}
}

func TestICEServers_TURNWithCredentials(t *testing.T) {
	cfg := &Config{
		STUNURLs:       []string{"stun:stun.l.google.com:19302"},
		TURNURL:        "turn:turn.nervis.dev:3478",
		TURNUsername:   "relay",
		TURNCredential: "hunter2",
	}

	servers := cfg.ICEServers()
	if len(servers) != 2 {
		t.Fatalf("servers=%d, want 2", len(servers))
	}
	turn := servers[1]
	if turn.Username != "relay" {
		t.Fatalf("Username=%q", turn.Username)
	}
	cred, ok := turn.Credential.(string)
	if !ok || cred != "hunter2" {
		t.Fatalf("Credential=%v", turn.Credential)
	}
}

func TestICEServers_DropsTURNWithIncompleteCredentials(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing username", Config{TURNURL: "turn:t:3478", TURNCredential: "x"}},
		{"missing credential", Config{TURNURL: "turn:t:3478", TURNUsername: "x"}},
		{"whitespace url", Config{TURNURL: "   ", TURNUsername: "x", TURNCredential: "y"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.ICEServers(); len(got) != 0 {
				t.Fatalf("servers=%v, want none", got)
			}
		})
	}
}
