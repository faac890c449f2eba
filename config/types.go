package config

// ServerConfig contains the HTTP read surface configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"omitempty,gt=0"`
}

// APIConfig contains SL Transport API configuration
type APIConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// Board represents a single departure board: one site plus a filter
type Board struct {
	Name           string   `yaml:"name" validate:"required"`
	SiteID         int      `yaml:"site_id" validate:"required,gt=0"`
	SiteName       string   `yaml:"site_name"`
	TransportModes []string `yaml:"transport_modes" validate:"omitempty,dive,oneof=TRAIN METRO BUS TRAM SHIP FERRY"`
	LineFilter     string   `yaml:"line_filter"`
	DirectionCode  string   `yaml:"direction_code"`
	DirectionName  string   `yaml:"direction_name"`
	ScanInterval   int      `yaml:"scan_interval" validate:"omitempty,gte=30,lte=300"` // seconds
	NumDepartures  int      `yaml:"num_departures" validate:"omitempty,gte=1,lte=10"`
	Policy         string   `yaml:"policy" validate:"omitempty,oneof=slots next next_active"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig `yaml:"server"`
	API      APIConfig    `yaml:"api"`
	Timezone string       `yaml:"timezone"`
	Boards   []Board      `yaml:"boards" validate:"required,min=1"`
}
