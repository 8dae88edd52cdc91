package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/blurcars/bootstrap"
	"github.com/fulldump/blurcars/configuration"
)

var VERSION = "dev"

var banner = `
 ____  _               ____
| __ )| |_   _ _ __   / ___|__ _ _ __ ___
|  _ \| | | | | '__| | |   / _' | '__/ __|
| |_) | | |_| | |    | |__| (_| | |  \__ \
|____/|_|\__,_|_|     \____\__,_|_|  |___/
                          version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	bootstrap.VERSION = VERSION
	start, _, err := bootstrap.Bootstrap(c)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	start()
}
