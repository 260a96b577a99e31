package models

// FormDefaults holds the initial values of the four form fields.
type FormDefaults struct {
	AxialLoad         float64 `yaml:"axial_load_kn"`
	MomentX           float64 `yaml:"moment_x_knm"`
	MomentY           float64 `yaml:"moment_y_knm"`
	AllowablePressure float64 `yaml:"allowable_pressure_kn_m2"`
}

// EngineSettings tunes the sizing loop.
type EngineSettings struct {
	MaxIterations int     `yaml:"max_iterations"`
	ScaleStep     float64 `yaml:"scale_step"`
}

// ReportSettings controls report language and document metadata.
type ReportSettings struct {
	Language    string `yaml:"language"`
	Project     string `yaml:"project"`
	Author      string `yaml:"author"`
	DefaultPath string `yaml:"default_path"`
}
