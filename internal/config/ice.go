package config

import (
	"strings"

	"github.com/pion/webrtc/v4"
)

// ICEServers assembles the STUN/TURN list handed to clients. A TURN entry
// without complete credentials is dropped rather than advertised broken.
func (c *Config) ICEServers() []webrtc.ICEServer {
	servers := make([]webrtc.ICEServer, 0, 2)
	if len(c.STUNURLs) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: c.STUNURLs})
	}
	turn := strings.TrimSpace(c.TURNURL)
	if turn == "" {
		return servers
	}
	if strings.TrimSpace(c.TURNUsername) == "" || strings.TrimSpace(c.TURNCredential) == "" {
		return servers
	}
	servers = append(servers, webrtc.ICEServer{
		URLs:       []string{turn},
		Username:   c.TURNUsername,
		Credential: c.TURNCredential,
	})
	return servers
}
