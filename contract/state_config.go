package contract

import (
	"brane_auction/sdk"

	"github.com/pkg/errors"
)

// loadConfig reads the config once per call and memoizes it on the context.
func (c *Context) loadConfig() (*Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	data := c.stateGetBytes(configKey())
	if data == nil {
		return nil, newError(KindNotInitialized, "contract not instantiated")
	}
	cfg, err := DecodeConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *Context) saveConfig(cfg *Config) {
	c.cfg = cfg
	c.stateSetIfChanged(configKey(), EncodeConfig(cfg))
}

func (c *Context) initialized() bool {
	return c.stateGetBytes(configKey()) != nil
}

func (c *Context) loadOwnershipTransfer() (sdk.Address, bool) {
	data := c.stateGetBytes(ownershipTransferKey())
	if data == nil {
		return "", false
	}
	return sdk.Address(data), true
}

func (c *Context) saveOwnershipTransfer(to sdk.Address) {
	c.Host.Set(ownershipTransferKey(), to.String())
}

func (c *Context) clearOwnershipTransfer() {
	c.Host.Delete(ownershipTransferKey())
}
