package config

type Local struct {
	LogLevel int `yaml:"loglevel" envconfig:"OMNIWORLD_LOGLEVEL"`
}

func (x *Local) Init() {
	x.LogLevel = 1
}

type Builder struct {
	OutputDir    string   `yaml:"output_dir" envconfig:"OMNIWORLD_OUTPUT_DIR"`
	RegistryPath string   `yaml:"registry_path" envconfig:"OMNIWORLD_REGISTRY_PATH"`
	Platforms    []string `yaml:"platforms" envconfig:"OMNIWORLD_PLATFORMS"`
}

func (x *Builder) Init() {
	x.OutputDir = "./build"
	x.RegistryPath = "./assets.db"
	x.Platforms = []string{"unity", "unreal", "horizon"}
}
