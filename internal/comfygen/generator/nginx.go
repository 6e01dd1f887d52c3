package generator

import (
	"strings"
	"text/template"
)

// vhostTemplate renders the reverse-proxy virtual host. FastAPI answers
// /api/ and the catch-all; ComfyUI answers /comfyui/ and the bare /ws
// WebSocket path.
var vhostTemplate = template.Must(template.New("vhost").Parse(`server {
    listen 80;
    server_name {{.ServerName}};

    # Static asset caching
    location ~* \.(jpg|jpeg|png|gif|ico|css|js)$ {
        expires 1y;
        add_header Cache-Control "public, immutable";
    }

    # FastAPI proxy
    location /api/ {
        proxy_pass http://localhost:{{.FastAPIPort}}/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;

        # WebSocket support
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";

        # Timeouts
        proxy_connect_timeout {{.APITimeoutSec}}s;
        proxy_send_timeout {{.APITimeoutSec}}s;
        proxy_read_timeout {{.APITimeoutSec}}s;
    }

    # ComfyUI proxy
    location /comfyui/ {
        proxy_pass http://localhost:{{.ComfyUIPort}}/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;

        # WebSocket support
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";

        # Large uploads
        client_max_body_size {{.MaxBodySize}};

        # Timeouts
        proxy_connect_timeout {{.ComfyUITimeoutSec}}s;
        proxy_send_timeout {{.ComfyUITimeoutSec}}s;
        proxy_read_timeout {{.ComfyUITimeoutSec}}s;
    }

    # Direct WebSocket proxy
    location /ws {
        proxy_pass http://localhost:{{.ComfyUIPort}}/ws;
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection "upgrade";
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;

        # WebSocket specifics
        proxy_buffering off;
        proxy_cache off;
    }

    # Default route to FastAPI
    location / {
        proxy_pass http://localhost:{{.FastAPIPort}}/;
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
    }
}`))

type vhostData struct {
	ServerName        string
	FastAPIPort       int
	ComfyUIPort       int
	MaxBodySize       string
	APITimeoutSec     int
	ComfyUITimeoutSec int
}

// NginxConfig renders the virtual host for the given domain. An empty
// domain produces the nginx wildcard server name "_". Pure string
// formatting; always succeeds.
func (g *Generator) NginxConfig(domain string) string {
	serverName := domain
	if serverName == "" {
		serverName = "_"
	}

	data := vhostData{
		ServerName:        serverName,
		FastAPIPort:       g.cfg.Services.FastAPIPort,
		ComfyUIPort:       g.cfg.Services.ComfyUIPort,
		MaxBodySize:       g.cfg.Proxy.MaxBodySize,
		APITimeoutSec:     g.cfg.Proxy.APITimeoutSec,
		ComfyUITimeoutSec: g.cfg.Proxy.ComfyUITimeoutSec,
	}

	var b strings.Builder
	// the template is fixed and fully covered by vhostData, execution
	// cannot fail
	_ = vhostTemplate.Execute(&b, data)
	return b.String()
}
