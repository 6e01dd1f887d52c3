package generator

import (
	"fmt"
	"path"
)

// SupervisorConfig builds the supervisord configuration: the control
// socket, the daemon itself, the RPC interface, the control client, and
// one program section per managed service (comfyui, fastapi). Always
// succeeds.
func (g *Generator) SupervisorConfig() Sections {
	logsDir := path.Join(g.WorkDir, "logs")
	// venv binaries first so the supervised scripts pick up the service's
	// own Python toolchain
	environment := fmt.Sprintf(`PATH="%s/venv/bin:/usr/local/bin:/usr/bin:/bin"`, g.WorkDir)

	return Sections{
		{
			Name: "unix_http_server",
			Entries: []Entry{
				{"file", "/tmp/supervisor.sock"},
				{"chmod", "0700"},
			},
		},
		{
			Name: "supervisord",
			Entries: []Entry{
				{"logfile", path.Join(logsDir, "supervisord.log")},
				{"logfile_maxbytes", "50MB"},
				{"logfile_backups", 10},
				{"loglevel", "info"},
				{"pidfile", "/tmp/supervisord.pid"},
				{"nodaemon", false},
				{"minfds", 1024},
				{"minprocs", 200},
			},
		},
		{
			Name: "rpcinterface:supervisor",
			Entries: []Entry{
				{"supervisor.rpcinterface_factory", "supervisor.rpcinterface:make_main_rpcinterface"},
			},
		},
		{
			Name: "supervisorctl",
			Entries: []Entry{
				{"serverurl", "unix:///tmp/supervisor.sock"},
			},
		},
		{
			Name: "program:comfyui",
			Entries: []Entry{
				{"command", path.Join(g.WorkDir, "start_comfyui.sh")},
				{"directory", g.ComfyUIDir},
				{"autostart", true},
				{"autorestart", true},
				{"stderr_logfile", path.Join(logsDir, "comfyui.error.log")},
				{"stdout_logfile", path.Join(logsDir, "comfyui.log")},
				{"environment", environment},
			},
		},
		{
			Name: "program:fastapi",
			Entries: []Entry{
				{"command", path.Join(g.WorkDir, "start_fastapi.sh")},
				{"directory", g.WorkDir},
				{"autostart", true},
				{"autorestart", true},
				{"stderr_logfile", path.Join(logsDir, "fastapi.error.log")},
				{"stdout_logfile", path.Join(logsDir, "fastapi.log")},
				{"environment", environment},
			},
		},
	}
}
