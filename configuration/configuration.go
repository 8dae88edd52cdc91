package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory"`
	Filename          string `usage:"collection file name inside the data directory"`
	ApiKey            string `usage:"API key, authentication is disabled when empty"`
	ApiSecret         string `usage:"API secret"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() *Configuration {
	return &Configuration{
		HttpAddr:   ":3000",
		Dir:        "data",
		Filename:   "cars.json",
		ShowBanner: true,
	}
}
