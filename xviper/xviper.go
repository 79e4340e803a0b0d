// Package xviper wraps viper into a small persisted key/value store
// under the product home. It holds the installation identity and other
// state that survives between pipeline runs.
package xviper

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/pathlib"
)

var (
	config     *viper.Viper
	configLock sync.Mutex
)

func summon() *viper.Viper {
	configLock.Lock()
	defer configLock.Unlock()
	if config != nil {
		return config
	}
	config = viper.New()
	config.SetConfigFile(common.ConfigFile())
	config.SetConfigType("yaml")
	if pathlib.IsFile(common.ConfigFile()) {
		err := config.ReadInConfig()
		if err != nil {
			common.Error("xviper.summon", err)
		}
	}
	return config
}

func Lockdown() {
	configLock.Lock()
	defer configLock.Unlock()
	config = nil
}

func Set(key string, value interface{}) {
	store := summon()
	store.Set(key, value)
	err := pathlib.EnsureParentDirectory(common.ConfigFile())
	if err != nil {
		common.Error("xviper.Set", err)
		return
	}
	err = store.WriteConfigAs(common.ConfigFile())
	if err != nil {
		common.Error("xviper.Set", err)
	}
}

func Get(key string) interface{} {
	return summon().Get(key)
}

func GetString(key string) string {
	return summon().GetString(key)
}

func GetBool(key string) bool {
	return summon().GetBool(key)
}

func GetInt64(key string) int64 {
	return summon().GetInt64(key)
}
