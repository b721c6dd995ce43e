package app

import "github.com/Villa717/sf241--react--restapi/internal/config"

func configForTest() config.Config {
	cfg := config.Default()
	cfg.APIURL = "https://example.test"
	return cfg
}
