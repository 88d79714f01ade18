package conf

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL  string
	APIKey   string
	Table    string
	BuyIn    int
	StatsDB  string
	LogLevel string
	Debug    bool
}

var DefaultConf = &Config{
	BaseURL:  "https://lais-vegas.com",
	Table:    "bronze-1",
	BuyIn:    1000,
	StatsDB:  "vegas.db",
	LogLevel: "info",
}

func ConfInit(filename string, printConf bool) (*Config, error) {
	out := *DefaultConf
	defer func() {
		if printConf {
			if data, err := json.Marshal(&out); err == nil {
				fmt.Println("the real config value is: ", string(data))
			} else {
				fmt.Println(err)
			}
		}
	}()

	c := viper.New()

	if ext := filepath.Ext(filename); ext != "" {
		c.SetConfigType(ext[1:]) // don't forgot set the config type
	}

	c.SetConfigFile(filename)
	if err := c.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := c.Unmarshal(&out); err != nil {
		return nil, err
	}

	return &out, nil
}
