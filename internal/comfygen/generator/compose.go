package generator

import "fmt"

// ComposeFile is the docker-compose deployment descriptor.
type ComposeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]ComposeService `yaml:"services"`
}

// ComposeService describes one service entry in the compose file.
type ComposeService struct {
	Build       *ComposeBuild  `yaml:"build,omitempty"`
	Image       string         `yaml:"image,omitempty"`
	Ports       []string       `yaml:"ports,omitempty"`
	Volumes     []string       `yaml:"volumes,omitempty"`
	Environment []string       `yaml:"environment,omitempty"`
	Deploy      *ComposeDeploy `yaml:"deploy,omitempty"`
	DependsOn   []string       `yaml:"depends_on,omitempty"`
	Restart     string         `yaml:"restart,omitempty"`
}

// ComposeBuild holds the image build parameters.
type ComposeBuild struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

// ComposeDeploy carries the GPU device reservation.
type ComposeDeploy struct {
	Resources ComposeResources `yaml:"resources"`
}

type ComposeResources struct {
	Reservations ComposeReservations `yaml:"reservations"`
}

type ComposeReservations struct {
	Devices []ComposeDevice `yaml:"devices"`
}

type ComposeDevice struct {
	Driver       string   `yaml:"driver"`
	Count        int      `yaml:"count"`
	Capabilities []string `yaml:"capabilities"`
}

// appService is the compose name of the GPU application container.
const appService = "comfyui-service"

// ComposeManifest builds the two-service deployment: the GPU application
// (built locally, one nvidia device reserved) and an nginx reverse proxy
// that starts after it.
func (g *Generator) ComposeManifest() ComposeFile {
	app := ComposeService{
		Build: &ComposeBuild{
			Context:    ".",
			Dockerfile: "Dockerfile",
		},
		Ports: []string{
			fmt.Sprintf("%d:%d", g.cfg.Services.FastAPIPort, g.cfg.Services.FastAPIPort),
			fmt.Sprintf("%d:%d", g.cfg.Services.ComfyUIPort, g.cfg.Services.ComfyUIPort),
		},
		Volumes: []string{
			g.WorkDir + ":/app",
			g.cfg.ModelsDir + ":/models",
			"./logs:/app/logs",
		},
		Environment: []string{
			"PYTHONPATH=/app",
			"CUDA_VISIBLE_DEVICES=0",
		},
		Deploy: &ComposeDeploy{
			Resources: ComposeResources{
				Reservations: ComposeReservations{
					Devices: []ComposeDevice{{
						Driver:       "nvidia",
						Count:        1,
						Capabilities: []string{"gpu"},
					}},
				},
			},
		},
		Restart: "unless-stopped",
	}

	proxy := ComposeService{
		Image: "nginx:alpine",
		Ports: []string{"80:80", "443:443"},
		Volumes: []string{
			"./nginx/nginx.conf:/etc/nginx/nginx.conf",
			"./nginx/sites-available:/etc/nginx/sites-available",
			"./nginx/ssl:/etc/nginx/ssl",
		},
		DependsOn: []string{appService},
		Restart:   "unless-stopped",
	}

	return ComposeFile{
		Version: "3.8",
		Services: map[string]ComposeService{
			appService: app,
			"nginx":    proxy,
		},
	}
}
